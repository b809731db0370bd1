// Package delivery hands stored notifications to an outward channel
// on a pool of background workers.
package delivery

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
)

// ErrQueueClosed is returned by Publish after Stop.
var ErrQueueClosed = errors.New("notification queue is closed")

// ErrQueueFull is returned by Publish when the buffer has no room.
var ErrQueueFull = errors.New("notification queue is full")

// Sender delivers a single notification, e.g. by push or e-mail.
type Sender interface {
	Send(ctx context.Context, notification domain.Notification) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, notification domain.Notification) error

func (f SenderFunc) Send(ctx context.Context, notification domain.Notification) error {
	return f(ctx, notification)
}

type job struct {
	notification domain.Notification
	attempt      int
}

// Queue buffers notifications in a channel and delivers them with a fixed number of workers.
// Publish never blocks the caller: a full buffer drops the notification with ErrQueueFull.
type Queue struct {
	jobs        chan job
	closeChan   chan struct{}
	wg          sync.WaitGroup
	mu          sync.RWMutex
	closed      bool
	sender      Sender
	workers     int
	maxAttempts int
	backoff     time.Duration
}

// NewQueue creates a queue with bufferSize slots and workers consumers.
func NewQueue(bufferSize, workers int, sender Sender) *Queue {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if workers <= 0 {
		workers = 1
	}
	return &Queue{
		jobs:        make(chan job, bufferSize),
		closeChan:   make(chan struct{}),
		sender:      sender,
		workers:     workers,
		maxAttempts: 3,
		backoff:     time.Second,
	}
}

var _ portssvc.NotificationDelivery = (*Queue)(nil)

// Publish enqueues a notification for delivery.
func (q *Queue) Publish(ctx context.Context, notification domain.Notification) error {
	return q.enqueue(ctx, job{notification: notification, attempt: 1})
}

func (q *Queue) enqueue(ctx context.Context, j job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- j:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// Start launches the workers. They exit when ctx is cancelled or Stop is called.
func (q *Queue) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx)
	}
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.closeChan:
			q.drain(ctx)
			return
		case j := <-q.jobs:
			q.process(ctx, j)
		}
	}
}

// drain delivers what is still buffered once the queue is closed.
func (q *Queue) drain(ctx context.Context) {
	for {
		select {
		case j := <-q.jobs:
			q.process(ctx, j)
		default:
			return
		}
	}
}

func (q *Queue) process(ctx context.Context, j job) {
	err := q.sender.Send(ctx, j.notification)
	if err == nil {
		return
	}

	logger := slog.Default().With(
		slog.String("notification_id", j.notification.NotificationID),
		slog.String("user_id", j.notification.UserID),
		slog.Int("attempt", j.attempt))

	if j.attempt >= q.maxAttempts {
		logger.ErrorContext(ctx, "Notification delivery failed", slog.String("error", err.Error()))
		return
	}

	logger.WarnContext(ctx, "Notification delivery failed, retrying", slog.String("error", err.Error()))
	j.attempt++
	time.AfterFunc(time.Duration(j.attempt-1)*q.backoff, func() {
		_ = q.enqueue(ctx, j)
	})
}

// Stop closes the queue and waits for the workers to finish the buffered notifications.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.closeChan)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogSender writes every notification to the structured log.
func LogSender(logger *slog.Logger) Sender {
	return SenderFunc(func(ctx context.Context, n domain.Notification) error {
		logger.InfoContext(ctx, "Notification delivered",
			slog.String("notification_id", n.NotificationID),
			slog.String("user_id", n.UserID),
			slog.String("type", string(n.Type)),
			slog.String("related_id", n.RelatedID),
			slog.String("status", string(n.Status)))
		return nil
	})
}
