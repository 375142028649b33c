package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anhqhe/orderfood/internal/domain"
)

// ErrNotFound is returned when no value has been stored yet.
var ErrNotFound = errors.New("not found")

const (
	credentialsFile = "credentials"
	userFile        = "user.json"

	dirPerm  = 0o700
	filePerm = 0o600
)

// CredentialFile stores the bearer token encrypted at rest.
type CredentialFile struct {
	path   string
	cipher Cipher
}

// NewCredentialFile creates a credential store under dir.
func NewCredentialFile(dir string, cipher Cipher) *CredentialFile {
	return &CredentialFile{path: filepath.Join(dir, credentialsFile), cipher: cipher}
}

func (f *CredentialFile) SaveToken(token string) error {
	sealed, err := f.cipher.Encrypt(token)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}
	return writeFileAtomic(f.path, []byte(sealed))
}

func (f *CredentialFile) LoadToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read credentials: %w", err)
	}

	token, err := f.cipher.Decrypt(string(data))
	if err != nil {
		return "", fmt.Errorf("failed to decrypt token: %w", err)
	}
	if token == "" {
		return "", ErrNotFound
	}
	return token, nil
}

func (f *CredentialFile) DeleteToken() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	return nil
}

// UserFile stores the current user record as plain JSON.
type UserFile struct {
	path string
}

// NewUserFile creates a user record store under dir.
func NewUserFile(dir string) *UserFile {
	return &UserFile{path: filepath.Join(dir, userFile)}
}

func (f *UserFile) SaveUser(user *domain.User) error {
	if user == nil {
		return fmt.Errorf("cannot save nil user")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	return writeFileAtomic(f.path, data)
}

func (f *UserFile) LoadUser() (*domain.User, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read user record: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user record: %w", err)
	}
	return &user, nil
}

func (f *UserFile) DeleteUser() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete user record: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
