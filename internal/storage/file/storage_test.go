package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/buitransport/internal/model"
)

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "credential.json"))

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, model.ErrCredentialNotFound)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credential.json")
	s := New(path)
	cred := model.Credential{AccessToken: "a", RefreshToken: "r"}

	require.NoError(t, s.Save(context.Background(), cred))

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cred, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSavedFileHoldsTwoKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential.json")
	s := New(path)
	require.NoError(t, s.Save(context.Background(), model.Credential{AccessToken: "a", RefreshToken: "r"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"access_token":"a","refresh_token":"r"}`, string(data))
}

func TestDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential.json")
	s := New(path)
	require.NoError(t, s.Save(context.Background(), model.Credential{AccessToken: "a"}))

	require.NoError(t, s.Delete(context.Background()))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Deleting again is fine
	assert.NoError(t, s.Delete(context.Background()))
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := New(path).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrCredentialNotFound)
}

func TestDeleteIfKeepsReplacedCredential(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential.json")
	s := New(path)
	old := model.Credential{AccessToken: "old", RefreshToken: "r1"}
	fresh := model.Credential{AccessToken: "fresh", RefreshToken: "r2"}
	require.NoError(t, s.Save(context.Background(), fresh))

	deleted, err := s.DeleteIf(context.Background(), old)
	require.NoError(t, err)
	assert.False(t, deleted)

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, loaded)

	deleted, err = s.DeleteIf(context.Background(), fresh)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	deleted, err = s.DeleteIf(context.Background(), fresh)
	require.NoError(t, err)
	assert.False(t, deleted)
}
