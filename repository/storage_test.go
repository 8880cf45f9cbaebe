package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/planner/repository"
	"github.com/fastygo/planner/repository/memory"
)

func TestLoadJSON(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewLocalStorage()

	var users []map[string]string
	found, err := repository.LoadJSON(ctx, storage, repository.KeyRegisteredUsers, &users)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, storage.Set(ctx, repository.KeyRegisteredUsers, []byte(`[{"email":"a@b.c"}]`)))
	found, err = repository.LoadJSON(ctx, storage, repository.KeyRegisteredUsers, &users)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a@b.c", users[0]["email"])

	require.NoError(t, storage.Set(ctx, repository.KeyUser, []byte(`{not json`)))
	var user map[string]string
	_, err = repository.LoadJSON(ctx, storage, repository.KeyUser, &user)
	assert.Error(t, err)
}
