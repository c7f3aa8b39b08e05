package storage

import (
	"context"

	"github.com/mcoot/buitransport/internal/model"
)

// ClientID identifies one browser (or other client) whose credential is stored
type ClientID string

// Storage defines the interface for credential persistence across many clients
type Storage interface {
	// LoadCredential returns model.ErrCredentialNotFound when no credential is stored
	LoadCredential(ctx context.Context, clientID ClientID) (model.Credential, error)
	SaveCredential(ctx context.Context, clientID ClientID, cred model.Credential) error
	DeleteCredential(ctx context.Context, clientID ClientID) error
	// DeleteCredentialIf deletes the stored credential only while it still equals cred.
	// It reports whether anything was deleted.
	DeleteCredentialIf(ctx context.Context, clientID ClientID, cred model.Credential) (bool, error)
}

// Credentials is the credential slot of a single client.
// This is the "client-local storage" the session store reads and writes.
type Credentials interface {
	Load(ctx context.Context) (model.Credential, error)
	Save(ctx context.Context, cred model.Credential) error
	Delete(ctx context.Context) error
	// DeleteIf deletes the credential only while it still equals cred, so a
	// credential saved by a newer login is never removed by a stale check
	DeleteIf(ctx context.Context, cred model.Credential) (bool, error)
}

// Scoped binds a Storage to one client
func Scoped(s Storage, clientID ClientID) Credentials {
	return &scoped{storage: s, clientID: clientID}
}

type scoped struct {
	storage  Storage
	clientID ClientID
}

func (s *scoped) Load(ctx context.Context) (model.Credential, error) {
	return s.storage.LoadCredential(ctx, s.clientID)
}

func (s *scoped) Save(ctx context.Context, cred model.Credential) error {
	return s.storage.SaveCredential(ctx, s.clientID, cred)
}

func (s *scoped) Delete(ctx context.Context) error {
	return s.storage.DeleteCredential(ctx, s.clientID)
}

func (s *scoped) DeleteIf(ctx context.Context, cred model.Credential) (bool, error) {
	return s.storage.DeleteCredentialIf(ctx, s.clientID, cred)
}
