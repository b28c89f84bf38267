package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vytor/pandaschool/internal/client"
)

// CredentialStore keeps the access credential between runs.
// Load returns nil, nil when nothing is stored.
type CredentialStore interface {
	Load() (*client.Credential, error)
	Save(cred client.Credential) error
	Clear() error
}

// FileCredentialStore stores the credential as JSON in a user-only file.
type FileCredentialStore struct {
	path string
}

func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{path: path}
}

func (s *FileCredentialStore) Load() (*client.Credential, error) {
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var cred client.Credential
	if err := json.Unmarshal(b, &cred); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if cred.AccessToken == "" {
		return nil, nil
	}
	return &cred, nil
}

func (s *FileCredentialStore) Save(cred client.Credential) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	b, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (s *FileCredentialStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// MemoryCredentialStore keeps the credential for the life of the process.
type MemoryCredentialStore struct {
	mu   sync.Mutex
	cred *client.Credential
}

func (s *MemoryCredentialStore) Load() (*client.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return nil, nil
	}
	c := *s.cred
	return &c, nil
}

func (s *MemoryCredentialStore) Save(cred client.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &cred
	return nil
}

func (s *MemoryCredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	return nil
}
