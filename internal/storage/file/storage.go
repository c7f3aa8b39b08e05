package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/storage"
)

// Storage keeps a single client's credential in a JSON file
type Storage struct {
	path string

	// mu orders writers within this process; the file is replaced atomically for readers
	mu sync.Mutex
}

// New creates a file-backed credential slot at path
func New(path string) *Storage {
	return &Storage{path: path}
}

// Ensure Storage implements the interface
var _ storage.Credentials = (*Storage)(nil)

// Path returns the credential file location
func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) Load(ctx context.Context) (model.Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Credential{}, model.ErrCredentialNotFound
		}
		return model.Credential{}, err
	}

	var cred model.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return model.Credential{}, fmt.Errorf("corrupt credential file %s: %w", s.path, err)
	}
	if cred.IsZero() {
		return model.Credential{}, model.ErrCredentialNotFound
	}
	return cred, nil
}

func (s *Storage) Save(ctx context.Context, cred model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	// Write then rename so a crash never leaves half a credential behind
	tmp, err := os.CreateTemp(dir, ".credential-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *Storage) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove()
}

func (s *Storage) DeleteIf(ctx context.Context, cred model.Credential) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.Load(ctx)
	if errors.Is(err, model.ErrCredentialNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != cred {
		return false, nil
	}
	return true, s.remove()
}

func (s *Storage) remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
