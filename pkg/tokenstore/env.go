package tokenstore

import (
	"os"
	"strings"
)

// EnvStore reads tokens from INSTAKIT_TOKEN_<PROFILE> environment
// variables, with INSTAKIT_ACCESS_TOKEN as the profile-agnostic
// fallback. It cannot write.
type EnvStore struct{}

func (EnvStore) Save(profile, token string) error {
	return ErrReadOnly
}

func (EnvStore) Load(profile string) (string, error) {
	if profile != "" {
		name := "INSTAKIT_TOKEN_" + strings.ToUpper(strings.ReplaceAll(profile, "-", "_"))
		if token := os.Getenv(name); token != "" {
			return token, nil
		}
	}
	if token := os.Getenv("INSTAKIT_ACCESS_TOKEN"); token != "" {
		return token, nil
	}
	return "", ErrNotFound
}

func (EnvStore) Delete(profile string) error {
	return ErrReadOnly
}
