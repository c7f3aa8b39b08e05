package memory

import (
	"context"
	"sync"

	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	credentials map[storage.ClientID]model.Credential
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		credentials: make(map[storage.ClientID]model.Credential),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) LoadCredential(ctx context.Context, clientID storage.ClientID) (model.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.credentials[clientID]
	if !ok {
		return model.Credential{}, model.ErrCredentialNotFound
	}
	return cred, nil
}

func (s *Storage) SaveCredential(ctx context.Context, clientID storage.ClientID, cred model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[clientID] = cred
	return nil
}

func (s *Storage) DeleteCredential(ctx context.Context, clientID storage.ClientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.credentials, clientID)
	return nil
}

func (s *Storage) DeleteCredentialIf(ctx context.Context, clientID storage.ClientID, cred model.Credential) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stored, ok := s.credentials[clientID]; !ok || stored != cred {
		return false, nil
	}
	delete(s.credentials, clientID)
	return true, nil
}

// Len returns the number of stored credentials
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.credentials)
}
