package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSaveAndLoadCredential() {
	cred := model.Credential{AccessToken: "access-1", RefreshToken: "refresh-1"}

	err := s.storage.SaveCredential(s.ctx, "client-1", cred)
	s.Require().NoError(err)

	loaded, err := s.storage.LoadCredential(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Equal(cred, loaded)
}

func (s *StorageSuite) TestLoadCredentialNotFound() {
	_, err := s.storage.LoadCredential(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrCredentialNotFound)
}

func (s *StorageSuite) TestDeleteCredential() {
	_ = s.storage.SaveCredential(s.ctx, "client-1", model.Credential{AccessToken: "a"})

	err := s.storage.DeleteCredential(s.ctx, "client-1")
	s.Require().NoError(err)

	_, err = s.storage.LoadCredential(s.ctx, "client-1")
	s.ErrorIs(err, model.ErrCredentialNotFound)
	s.Equal(0, s.storage.Len())
}

func (s *StorageSuite) TestDeleteMissingCredentialIsNoop() {
	s.NoError(s.storage.DeleteCredential(s.ctx, "nonexistent"))
}

func (s *StorageSuite) TestClientsAreIsolated() {
	_ = s.storage.SaveCredential(s.ctx, "client-1", model.Credential{AccessToken: "a1"})
	_ = s.storage.SaveCredential(s.ctx, "client-2", model.Credential{AccessToken: "a2"})

	_ = s.storage.DeleteCredential(s.ctx, "client-1")

	loaded, err := s.storage.LoadCredential(s.ctx, "client-2")
	s.Require().NoError(err)
	s.Equal("a2", loaded.AccessToken)
}

func (s *StorageSuite) TestScopedCredentials() {
	creds := storage.Scoped(s.storage, "client-1")

	_, err := creds.Load(s.ctx)
	s.ErrorIs(err, model.ErrCredentialNotFound)

	s.Require().NoError(creds.Save(s.ctx, model.Credential{AccessToken: "a", RefreshToken: "r"}))
	loaded, err := creds.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal("r", loaded.RefreshToken)

	s.Require().NoError(creds.Delete(s.ctx))
	_, err = s.storage.LoadCredential(s.ctx, "client-1")
	s.ErrorIs(err, model.ErrCredentialNotFound)
}

func (s *StorageSuite) TestDeleteCredentialIfKeepsReplacedCredential() {
	old := model.Credential{AccessToken: "old", RefreshToken: "r1"}
	fresh := model.Credential{AccessToken: "fresh", RefreshToken: "r2"}
	_ = s.storage.SaveCredential(s.ctx, "client-1", fresh)

	deleted, err := s.storage.DeleteCredentialIf(s.ctx, "client-1", old)
	s.Require().NoError(err)
	s.False(deleted)

	loaded, err := s.storage.LoadCredential(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Equal(fresh, loaded)

	deleted, err = s.storage.DeleteCredentialIf(s.ctx, "client-1", fresh)
	s.Require().NoError(err)
	s.True(deleted)
	s.Equal(0, s.storage.Len())
}

func (s *StorageSuite) TestScopedDeleteIfMissing() {
	deleted, err := storage.Scoped(s.storage, "client-1").DeleteIf(s.ctx, model.Credential{AccessToken: "a"})
	s.NoError(err)
	s.False(deleted)
}
