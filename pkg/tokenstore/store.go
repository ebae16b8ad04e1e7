// Package tokenstore persists OAuth access tokens outside the client.
// The client itself never stores tokens; callers that want sessions to
// survive restarts wire one of these stores around it.
package tokenstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no token is stored under a profile.
var ErrNotFound = errors.New("token not found")

// ErrReadOnly is returned by stores that cannot persist.
var ErrReadOnly = errors.New("store is read-only")

// Store persists access tokens keyed by profile name. A profile is an
// arbitrary caller-chosen label, usually the account or app name.
type Store interface {
	Save(profile, token string) error
	Load(profile string) (string, error)
	Delete(profile string) error
}

// Manager tries a chain of stores in order: Save goes to the first
// store that accepts it, Load and Delete to the first that has the
// profile.
type Manager struct {
	stores []Store
}

// NewManager builds the default chain: system keyring when available,
// an encrypted file under the user config directory otherwise, with
// the environment as a read-only last resort.
func NewManager() (*Manager, error) {
	var stores []Store

	if ks, err := NewKeyringStore(); err == nil {
		stores = append(stores, ks)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		fs, err := NewEncryptedFileStore(filepath.Join(dir, "tokens.enc"))
		if err != nil {
			return nil, err
		}
		stores = append(stores, fs)
	}

	stores = append(stores, EnvStore{})
	return &Manager{stores: stores}, nil
}

// NewManagerWith builds a manager over an explicit chain.
func NewManagerWith(stores ...Store) *Manager {
	return &Manager{stores: stores}
}

// Save persists the token in the first store that accepts it.
func (m *Manager) Save(profile, token string) error {
	var lastErr error
	for _, s := range m.stores {
		if err := s.Save(profile, token); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = ErrReadOnly
	}
	return fmt.Errorf("no store accepted the token: %w", lastErr)
}

// Load returns the token from the first store that has the profile.
func (m *Manager) Load(profile string) (string, error) {
	for _, s := range m.stores {
		token, err := s.Load(profile)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	return "", ErrNotFound
}

// Delete removes the profile from every store that has it.
func (m *Manager) Delete(profile string) error {
	found := false
	for _, s := range m.stores {
		err := s.Delete(profile)
		if err == nil {
			found = true
			continue
		}
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrReadOnly) {
			return err
		}
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".config", "instakit")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}
