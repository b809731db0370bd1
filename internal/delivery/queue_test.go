package delivery

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	seen []string
}

func (r *recordingSender) Send(_ context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n.NotificationID)
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

func TestQueueDeliversPublished(t *testing.T) {
	sender := &recordingSender{}
	q := NewQueue(10, 2, sender)
	q.Start(context.Background())

	for _, id := range []string{"n1", "n2", "n3"} {
		require.NoError(t, q.Publish(context.Background(), domain.Notification{NotificationID: id}))
	}

	require.NoError(t, q.Stop(context.Background()))
	assert.ElementsMatch(t, []string{"n1", "n2", "n3"}, sender.seen)
	assert.ErrorIs(t, q.Publish(context.Background(), domain.Notification{}), ErrQueueClosed)
}

func TestQueueFullDoesNotBlock(t *testing.T) {
	q := NewQueue(1, 1, &recordingSender{})

	require.NoError(t, q.Publish(context.Background(), domain.Notification{NotificationID: "n1"}))
	assert.ErrorIs(t, q.Publish(context.Background(), domain.Notification{NotificationID: "n2"}), ErrQueueFull)
}

func TestQueueRetriesFailedSends(t *testing.T) {
	var calls atomic.Int32
	q := NewQueue(4, 1, SenderFunc(func(context.Context, domain.Notification) error {
		if calls.Add(1) < 3 {
			return errors.New("gateway timeout")
		}
		return nil
	}))
	q.backoff = time.Millisecond
	q.Start(context.Background())
	defer q.Stop(context.Background())

	require.NoError(t, q.Publish(context.Background(), domain.Notification{NotificationID: "n1"}))
	assert.Eventually(t, func() bool { return calls.Load() == 3 }, time.Second, 5*time.Millisecond)
}
