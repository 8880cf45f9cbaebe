package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/planner/domain"
)

func TestNotifierVersionsAndFanOut(t *testing.T) {
	n := NewNotifier(0, nil)
	var order []string

	n.Subscribe("first", func(_ context.Context, c domain.Change) { order = append(order, "first:"+c.EntityID) })
	unsubscribe := n.Subscribe("second", func(_ context.Context, c domain.Change) { order = append(order, "second:"+c.EntityID) })

	c1 := n.Publish(context.Background(), domain.NewChange(domain.StoreData, domain.EntityTask, domain.OperationCreate, "t1", nil))
	unsubscribe()
	c2 := n.Publish(context.Background(), domain.NewChange(domain.StoreData, domain.EntityTask, domain.OperationDelete, "t2", nil))

	assert.Equal(t, int64(1), c1.Version)
	assert.Equal(t, int64(2), c2.Version)
	assert.False(t, c1.CreatedAt.IsZero())
	assert.Equal(t, []string{"first:t1", "second:t1", "first:t2"}, order)
	assert.Equal(t, int64(2), n.Version())
}

func TestNotifierHistoryIsBounded(t *testing.T) {
	n := NewNotifier(3, nil)
	for i := 0; i < 5; i++ {
		n.Publish(context.Background(), domain.Change{Store: domain.StoreData})
	}

	all := n.Since(0)
	require.Len(t, all, 3)
	assert.Equal(t, int64(3), all[0].Version)
	assert.Equal(t, int64(5), all[2].Version)

	assert.Len(t, n.Since(4), 1)
	assert.Empty(t, n.Since(5))
}

func TestNewChangeEncodesPayload(t *testing.T) {
	change := domain.NewChange(domain.StoreData, domain.EntityUser, domain.OperationUpdate, "u1", map[string]string{"name": "Kim"})
	assert.JSONEq(t, `{"name":"Kim"}`, string(change.Payload))

	Publish(context.Background(), nil, domain.StoreData, domain.EntityUser, domain.OperationUpdate, "u1", nil)
}
