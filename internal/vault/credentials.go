// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/claudia-app/claudia-vault/internal/utils"
)

// HashFileName is the verifier file at the workspace root.
const HashFileName = ".master_password_hash"

const hashFileMode os.FileMode = 0o600

//go:generate mockgen -source=credentials.go -destination=../mock/credential_store_mock.go -package=mock

// CredentialStore persists the master password verifier.
type CredentialStore interface {
	// Exists reports whether a verifier has been written.
	Exists() (bool, error)
	// Load returns the stored verifier or ErrNotSetUp.
	Load() (string, error)
	// Create writes the first verifier. It fails with ErrAlreadySetUp when
	// one exists, even if another process created it concurrently.
	Create(hash string) error
	// Replace atomically swaps the verifier for a new one.
	Replace(hash string) error
}

type fileCredentialStore struct {
	dir  string
	path string
}

// NewFileCredentialStore stores the verifier as HashFileName inside
// workspace with owner-only permissions.
func NewFileCredentialStore(workspace string) CredentialStore {
	return &fileCredentialStore{
		dir:  workspace,
		path: filepath.Join(workspace, HashFileName),
	}
}

func (s *fileCredentialStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: stat %s: %w", ErrIOFailure, HashFileName, err)
	}
}

func (s *fileCredentialStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotSetUp
	}
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrIOFailure, HashFileName, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *fileCredentialStore) Create(hash string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("%w: create workspace: %w", ErrIOFailure, err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, hashFileMode)
	if errors.Is(err, fs.ErrExist) {
		return ErrAlreadySetUp
	}
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIOFailure, HashFileName, err)
	}

	_, err = f.WriteString(hash)
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(s.path)
		return fmt.Errorf("%w: write %s: %w", ErrIOFailure, HashFileName, err)
	}
	return nil
}

func (s *fileCredentialStore) Replace(hash string) error {
	if err := utils.WriteFileAtomic(s.path, []byte(hash), hashFileMode); err != nil {
		return fmt.Errorf("%w: replace %s: %w", ErrIOFailure, HashFileName, err)
	}
	return nil
}
