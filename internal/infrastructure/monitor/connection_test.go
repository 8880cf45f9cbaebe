package monitor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/planner/internal/infrastructure/buffer"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(context.Context) error { return p.err }

func TestCheckReflectsPing(t *testing.T) {
	buf, err := buffer.Open(filepath.Join(t.TempDir(), "buffer.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = buf.Close() })
	require.NoError(t, buf.Enqueue(buffer.Item{Key: "user"}))

	pinger := &stubPinger{}
	m := New("redis", pinger, buf, 0, nil)
	assert.False(t, m.IsOnline())

	status := m.Check(context.Background())
	assert.True(t, status.Storage)
	assert.True(t, status.Buffer)
	assert.Equal(t, 1, status.BufferSize)
	assert.Equal(t, "redis", status.Driver)
	assert.True(t, m.IsOnline())

	pinger.err = errors.New("connection refused")
	m.Check(context.Background())
	assert.False(t, m.IsOnline())
	assert.False(t, m.GetStatus().Storage)
}

func TestInProcessStorageIsAlwaysOnline(t *testing.T) {
	m := New("bolt", nil, nil, 0, nil)
	status := m.Check(context.Background())
	assert.True(t, status.Storage)
	assert.False(t, status.Buffer)
	m.Stop()
	m.Stop()
}
