package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instakit/pkg/instagram"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "https", cfg.Client.APIScheme)
	assert.Equal(t, "api.instagram.com", cfg.Client.APIHost)
	assert.Equal(t, []string{"basic"}, cfg.Client.Scopes)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Console)
	assert.Empty(t, cfg.Client.ClientID)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("INSTAKIT_CLIENT_ID", "env-client")
	t.Setenv("INSTAKIT_REDIRECT_URI", "https://env.example.com/cb")
	t.Setenv("INSTAKIT_SCOPES", "basic, comments ,likes")
	t.Setenv("INSTAKIT_HTTP_TIMEOUT", "45s")
	t.Setenv("INSTAKIT_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	assert.Equal(t, "env-client", cfg.Client.ClientID)
	assert.Equal(t, "https://env.example.com/cb", cfg.Client.RedirectURI)
	assert.Equal(t, []string{"basic", "comments", "likes"}, cfg.Client.Scopes)
	assert.Equal(t, 45*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvIgnoresBadTimeout(t *testing.T) {
	t.Setenv("INSTAKIT_HTTP_TIMEOUT", "soon")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `client:
  client_id: file-client
  redirect_uri: https://file.example.com/cb
  scopes:
    - basic
    - public_content
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "file-client", cfg.Client.ClientID)
	assert.Equal(t, []string{"basic", "public_content"}, cfg.Client.Scopes)
	assert.Equal(t, "warn", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "api.instagram.com", cfg.Client.APIHost)
}

func TestLoadFromFileErrors(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("client: [not a map"), 0600))
	assert.Error(t, cfg.LoadFromFile(path))
}

func TestMergeFlagsWinOverEverything(t *testing.T) {
	t.Setenv("INSTAKIT_CLIENT_ID", "env-client")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()
	cfg.MergeFlags(map[string]interface{}{
		"client-id": "flag-client",
		"scopes":    "likes",
		"log-level": "error",
	})

	assert.Equal(t, "flag-client", cfg.Client.ClientID)
	assert.Equal(t, []string{"likes"}, cfg.Client.Scopes)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestMergeFlagsIgnoresEmptyValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Client.ClientID = "kept"
	cfg.MergeFlags(map[string]interface{}{"client-id": ""})
	assert.Equal(t, "kept", cfg.Client.ClientID)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Client.ClientID = "id"
	cfg.Client.RedirectURI = "https://example.com/cb"
	assert.NoError(t, cfg.Validate())

	t.Run("missing identity", func(t *testing.T) {
		cfg := DefaultConfig()
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "client ID is required")
		assert.Contains(t, err.Error(), "redirect URI is required")
	})

	t.Run("unknown scope", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Client.ClientID = "id"
		cfg.Client.RedirectURI = "https://example.com/cb"
		cfg.Client.Scopes = []string{"basic", "superuser"}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "superuser")
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Client.ClientID = "id"
		cfg.Client.RedirectURI = "https://example.com/cb"
		cfg.Logging.Level = "loud"
		assert.Error(t, cfg.Validate())
	})
}

func TestClientConfigurationConversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Client.ClientID = "id"
	cfg.Client.RedirectURI = "https://example.com/cb"
	cfg.Client.Scopes = []string{"basic", "comments"}

	cc := cfg.ClientConfiguration()
	assert.Equal(t, "id", cc.ClientID)
	assert.Equal(t, []instagram.Scope{instagram.ScopeBasic, instagram.ScopeComments}, cc.Scopes)
	assert.NoError(t, cc.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Client.ClientID = "saved-client"
	require.NoError(t, cfg.Save(path))

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, "saved-client", loaded.Client.ClientID)
}

func TestLoadAssemblesAndValidates(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // keep user-level config files out of the test
	t.Setenv("INSTAKIT_CLIENT_ID", "env-client")
	t.Setenv("INSTAKIT_REDIRECT_URI", "https://env.example.com/cb")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "env-client", cfg.Client.ClientID)

	t.Setenv("INSTAKIT_CLIENT_ID", "")
	t.Setenv("INSTAKIT_REDIRECT_URI", "")
	_, err = Load("", nil)
	assert.Error(t, err)
}
