// Package queue carries career commands to the worker that owns the career.
package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/matchday/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 1024
)

// Result is what a command produced.
type Result struct {
	Value any
	Err   error
}

// Command is one mutation of a career. Run executes on the career's worker,
// never concurrently with another command for the same career.
type Command struct {
	ID       string
	CareerID string
	Kind     string
	Run      func(ctx context.Context) (any, error)
	// Reply receives exactly one Result. It must be buffered or nil.
	Reply    chan Result
	Enqueued time.Time
}

// NewCommand builds a command with a buffered reply channel.
func NewCommand(id, careerID, kind string, run func(ctx context.Context) (any, error)) Command {
	return Command{
		ID:       id,
		CareerID: careerID,
		Kind:     kind,
		Run:      run,
		Reply:    make(chan Result, 1),
		Enqueued: time.Now(),
	}
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a command without blocking. It fails with ErrQueueFull,
	// ErrStopped or the context's error.
	Enqueue(ctx context.Context, c Command) error

	// Dequeue returns the channel commands are delivered on. It is closed
	// when the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Command

	Len(ctx context.Context) int

	// Close stops accepting commands.
	Close() error

	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	commands chan Command
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.commands = make(chan Command, q.capacity)
	return q
}

// Enqueue adds a command to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, c Command) error { //nolint:gocritic // hugeParam: passed by value for channel semantics
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordCommandRejected("queue_closed")
		return ErrStopped
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordCommandRejected("context_cancelled")
		return err
	}

	select {
	case q.commands <- c:
		metrics.UpdateQueueSize(len(q.commands))
		return nil
	default:
		metrics.RecordCommandRejected("queue_full")
		return fmt.Errorf("%w: capacity %d", ErrQueueFull, q.capacity)
	}
}

// Dequeue returns the command channel.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Command {
	return q.commands
}

// Len returns the current number of queued commands.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.commands)
}

// Capacity returns the configured capacity.
func (q *InMemoryQueue) Capacity() int {
	return q.capacity
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.commands)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
