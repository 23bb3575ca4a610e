// Package session holds the client's durable bearer token. The adapter
// takes the Store interface rather than reaching into ambient storage, so
// tests can run against the in-memory implementation.
package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Store is single-key durable storage for the bearer token.
type Store interface {
	// Token returns the stored token and whether one is present.
	Token() (string, bool)
	SetToken(token string) error
	Clear() error
}

// FileStore persists the token as a file under the user config dir.
type FileStore struct {
	path string
}

// NewFileStore places the token file under dir. With an empty dir it falls
// back to <user config dir>/movies.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "movies")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dir, "token")}, nil
}

func (s *FileStore) Token() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

func (s *FileStore) SetToken(token string) error {
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	token string
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Token() (string, bool) { return s.token, s.token != "" }

func (s *MemStore) SetToken(token string) error {
	s.token = token
	return nil
}

func (s *MemStore) Clear() error {
	s.token = ""
	return nil
}
