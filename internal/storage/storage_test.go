package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anhqhe/orderfood/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func TestCredentialFile_RoundTrip(t *testing.T) {
	creds := NewCredentialFile(t.TempDir(), NoopCipher{})

	require.NoError(t, creds.SaveToken("tok1"))

	token, err := creds.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok1", token)
}

func TestCredentialFile_EncryptedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cipher, err := NewAESGCMCipher(testKey)
	require.NoError(t, err)

	creds := NewCredentialFile(dir, cipher)
	require.NoError(t, creds.SaveToken("tok1"))

	// Token must not appear in plaintext on disk.
	raw, err := os.ReadFile(filepath.Join(dir, "credentials"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "tok1")

	token, err := creds.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok1", token)
}

func TestCredentialFile_LoadMissing(t *testing.T) {
	creds := NewCredentialFile(t.TempDir(), NoopCipher{})

	_, err := creds.LoadToken()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCredentialFile_LoadCorrupted(t *testing.T) {
	dir := t.TempDir()
	cipher, err := NewAESGCMCipher(testKey)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials"), []byte("zz-not-hex"), 0o600))

	creds := NewCredentialFile(dir, cipher)
	_, err = creds.LoadToken()
	assert.Error(t, err)
}

func TestCredentialFile_DeleteIsIdempotent(t *testing.T) {
	creds := NewCredentialFile(t.TempDir(), NoopCipher{})

	require.NoError(t, creds.SaveToken("tok1"))
	require.NoError(t, creds.DeleteToken())
	require.NoError(t, creds.DeleteToken())

	_, err := creds.LoadToken()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCredentialFile_Permissions(t *testing.T) {
	dir := t.TempDir()
	creds := NewCredentialFile(dir, NoopCipher{})
	require.NoError(t, creds.SaveToken("tok1"))

	info, err := os.Stat(filepath.Join(dir, "credentials"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestUserFile_RoundTrip(t *testing.T) {
	users := NewUserFile(t.TempDir())

	in := &domain.User{ID: "u1", Name: "A", Email: "a@b.com", Phone: "123", Role: domain.RoleAdmin}
	require.NoError(t, users.SaveUser(in))

	out, err := users.LoadUser()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUserFile_LoadMissing(t *testing.T) {
	users := NewUserFile(t.TempDir())

	_, err := users.LoadUser()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserFile_LoadCorrupted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0o600))

	users := NewUserFile(dir)
	_, err := users.LoadUser()
	assert.Error(t, err)
}

func TestUserFile_SaveNil(t *testing.T) {
	users := NewUserFile(t.TempDir())
	assert.Error(t, users.SaveUser(nil))
}

func TestUserFile_DeleteIsIdempotent(t *testing.T) {
	users := NewUserFile(t.TempDir())
	require.NoError(t, users.DeleteUser())
}

func TestAESGCMCipher_InvalidKey(t *testing.T) {
	_, err := NewAESGCMCipher("nope")
	assert.Error(t, err)

	_, err = NewAESGCMCipher(strings.Repeat("ab", 8)) // 8 bytes, too short for AES-256
	assert.Error(t, err)
}

func TestWriteFileAtomic_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	creds := NewCredentialFile(dir, NoopCipher{})

	require.NoError(t, creds.SaveToken("tok1"))

	token, err := creds.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok1", token)
}
