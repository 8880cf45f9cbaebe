package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/internal/infrastructure/buffer"
	"github.com/fastygo/planner/repository"
	"github.com/fastygo/planner/repository/memory"
	"github.com/fastygo/planner/usecase"
)

type stubHealth struct {
	online bool
}

func (h *stubHealth) IsOnline() bool { return h.online }

type flakyStorage struct {
	repository.LocalStorage
	err error
}

func (s *flakyStorage) Set(ctx context.Context, key string, value []byte) error {
	if s.err != nil {
		return s.err
	}
	return s.LocalStorage.Set(ctx, key, value)
}

func (s *flakyStorage) Remove(ctx context.Context, key string) error {
	if s.err != nil {
		return s.err
	}
	return s.LocalStorage.Remove(ctx, key)
}

type fixture struct {
	store     *buffer.Store
	storage   *flakyStorage
	health    *stubHealth
	processor *BufferProcessor
}

func newFixture(t *testing.T, maxRetries int) fixture {
	t.Helper()
	store, err := buffer.Open(filepath.Join(t.TempDir(), "buffer.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	storage := &flakyStorage{LocalStorage: memory.NewLocalStorage(), err: errors.New("connection refused")}
	health := &stubHealth{}
	processor := NewBufferProcessor(store, health, storage, nil, ProcessorConfig{MaxRetries: maxRetries})
	return fixture{store: store, storage: storage, health: health, processor: processor}
}

func TestBridgeBuffersWhileOffline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3)
	bridge := NewBufferBridge(f.processor)

	require.NoError(t, bridge.BufferWrite(ctx, usecase.OperationSet, repository.KeyRegisteredUsers, []byte(`[]`)))
	require.NoError(t, bridge.BufferWrite(ctx, usecase.OperationSet, repository.KeyUser, []byte(`{"id":"1"}`)))
	assert.Equal(t, 2, f.processor.Size())

	items, err := f.store.GetBatch(10)
	require.NoError(t, err)
	assert.Equal(t, repository.KeyUser, items[0].Key)

	// offline: nothing is replayed
	require.NoError(t, f.processor.Drain(ctx))
	assert.Equal(t, 2, f.processor.Size())

	f.health.online = true
	f.storage.err = nil
	require.NoError(t, f.processor.Drain(ctx))
	assert.Zero(t, f.processor.Size())

	raw, err := f.storage.Get(ctx, repository.KeyUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(raw))
}

func TestBridgeReplaysRemove(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3)
	require.NoError(t, f.storage.LocalStorage.Set(ctx, repository.KeyUser, []byte(`{"id":"1"}`)))

	bridge := NewBufferBridge(f.processor)
	require.NoError(t, bridge.BufferWrite(ctx, usecase.OperationRemove, repository.KeyUser, nil))

	f.health.online = true
	f.storage.err = nil
	require.NoError(t, f.processor.Drain(ctx))

	_, err := f.storage.Get(ctx, repository.KeyUser)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestImmediateWriteWhenOnline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3)
	f.health.online = true
	f.storage.err = nil

	require.NoError(t, NewBufferBridge(f.processor).BufferWrite(ctx, usecase.OperationSet, "k", []byte(`1`)))
	assert.Zero(t, f.processor.Size())
}

func TestDrainDropsAfterMaxRetries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)
	require.NoError(t, f.store.Enqueue(buffer.Item{Key: "k", Value: []byte(`1`)}))

	f.health.online = true
	require.NoError(t, f.processor.Drain(ctx))
	items, err := f.store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Retries)

	require.NoError(t, f.processor.Drain(ctx))
	assert.Zero(t, f.processor.Size())
}

func TestBridgeRejectsEmptyKey(t *testing.T) {
	assert.ErrorIs(t, NewBufferBridge(nil).BufferWrite(context.Background(), usecase.OperationSet, "", nil), domain.ErrInvalidPayload)
}
