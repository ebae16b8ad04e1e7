package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) (*EncryptedFileStore, string) {
	t.Helper()
	t.Setenv("INSTAKIT_PASSPHRASE", "test-passphrase")
	path := filepath.Join(t.TempDir(), "tokens.enc")
	store, err := NewEncryptedFileStore(path)
	require.NoError(t, err)
	return store, path
}

func TestEncryptedFileStoreRoundTrip(t *testing.T) {
	store, _ := newTestFileStore(t)

	require.NoError(t, store.Save("personal", "token-one"))
	require.NoError(t, store.Save("work", "token-two"))

	token, err := store.Load("personal")
	require.NoError(t, err)
	assert.Equal(t, "token-one", token)

	// Overwriting replaces the stored value.
	require.NoError(t, store.Save("personal", "token-three"))
	token, err = store.Load("personal")
	require.NoError(t, err)
	assert.Equal(t, "token-three", token)
}

func TestEncryptedFileStoreRejectsEmptyInput(t *testing.T) {
	store, _ := newTestFileStore(t)
	assert.Error(t, store.Save("", "token"))
	assert.Error(t, store.Save("profile", ""))
}

func TestEncryptedFileStoreNotFound(t *testing.T) {
	store, _ := newTestFileStore(t)
	_, err := store.Load("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete("missing"), ErrNotFound)
}

func TestEncryptedFileStoreDeleteLastRemovesFile(t *testing.T) {
	store, path := newTestFileStore(t)

	require.NoError(t, store.Save("only", "token"))
	_, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, store.Delete("only"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestEncryptedFileStoreContentIsOpaque(t *testing.T) {
	store, path := newTestFileStore(t)
	require.NoError(t, store.Save("personal", "super-secret-token"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "super-secret-token")
	assert.NotContains(t, string(raw), "personal")

	var file encryptedFile
	require.NoError(t, json.Unmarshal(raw, &file))
	assert.Equal(t, 1, file.Version)
	assert.NotEmpty(t, file.Salt)
	assert.NotEmpty(t, file.Encrypted)
}

func TestEncryptedFileStoreWrongPassphraseFails(t *testing.T) {
	t.Setenv("INSTAKIT_PASSPHRASE", "correct")
	path := filepath.Join(t.TempDir(), "tokens.enc")
	store, err := NewEncryptedFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save("personal", "token"))

	t.Setenv("INSTAKIT_PASSPHRASE", "wrong")
	other, err := NewEncryptedFileStore(path)
	require.NoError(t, err)
	_, err = other.Load("personal")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestEncryptedFileStoreGeneratesPassphraseFile(t *testing.T) {
	t.Setenv("INSTAKIT_PASSPHRASE", "")
	dir := t.TempDir()
	store, err := NewEncryptedFileStore(filepath.Join(dir, "tokens.enc"))
	require.NoError(t, err)
	require.NoError(t, store.Save("personal", "token"))

	content, err := os.ReadFile(filepath.Join(dir, ".passphrase"))
	require.NoError(t, err)
	assert.NotEmpty(t, content)

	// A second store over the same path reuses the generated passphrase.
	again, err := NewEncryptedFileStore(filepath.Join(dir, "tokens.enc"))
	require.NoError(t, err)
	token, err := again.Load("personal")
	require.NoError(t, err)
	assert.Equal(t, "token", token)
}
