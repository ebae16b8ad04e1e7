package tokenstore

import (
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "instakit"
	keyringPrefix  = "token_"
)

// KeyringStore keeps tokens in the operating system keychain.
type KeyringStore struct{}

// NewKeyringStore probes the system keyring and returns a store backed
// by it. Headless systems without a secret service fail the probe.
func NewKeyringStore() (*KeyringStore, error) {
	const probe = "availability_probe"
	if err := keyring.Set(keyringService, probe, "ok"); err != nil {
		return nil, fmt.Errorf("keyring not available: %w", err)
	}
	_ = keyring.Delete(keyringService, probe)
	return &KeyringStore{}, nil
}

func (k *KeyringStore) Save(profile, token string) error {
	if profile == "" || token == "" {
		return fmt.Errorf("profile and token are required")
	}
	if err := keyring.Set(keyringService, keyringPrefix+profile, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

func (k *KeyringStore) Load(profile string) (string, error) {
	token, err := keyring.Get(keyringService, keyringPrefix+profile)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read token from keyring: %w", err)
	}
	return token, nil
}

func (k *KeyringStore) Delete(profile string) error {
	err := keyring.Delete(keyringService, keyringPrefix+profile)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}
