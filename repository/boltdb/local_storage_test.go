package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/repository"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "storage.db")

	storage, err := Open(path)
	require.NoError(t, err)

	_, err = storage.Get(ctx, repository.KeyUser)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, storage.Set(ctx, repository.KeyUser, []byte(`{"id":"1","name":"Kim"}`)))
	require.NoError(t, storage.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	var user domain.SessionUser
	found, err := repository.LoadJSON(ctx, reopened, repository.KeyUser, &user)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Kim", user.Name)

	require.NoError(t, reopened.Remove(ctx, repository.KeyUser))
	found, err = repository.LoadJSON(ctx, reopened, repository.KeyUser, &user)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLocalStorageHonorsCanceledContext(t *testing.T) {
	storage, err := Open(filepath.Join(t.TempDir(), "storage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, storage.Set(ctx, "k", []byte(`1`)), context.Canceled)
}
