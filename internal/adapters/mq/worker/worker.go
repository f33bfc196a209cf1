// Package worker runs career commands. Each career hashes to exactly one
// worker, so commands for a career execute one at a time and in order.
package worker

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"runtime"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/okian/matchday/internal/adapters/mq/queue"
	"github.com/okian/matchday/pkg/logger"
	"github.com/okian/matchday/pkg/metrics"
)

// Default worker configuration constants.
const (
	poolShutdownTimeout = 30 * time.Second
)

// Queue defines how a worker receives commands.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Command
}

// Worker processes commands from one queue.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue closes.
	Run(ctx context.Context)

	// Shutdown waits for the worker to drain.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue Queue
	name  string

	done   chan struct{}
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:  q,
		name:   "worker",
		done:   make(chan struct{}),
		logger: logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop. Pending commands are drained after the queue
// closes.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	commands := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-commands:
			if !ok {
				return
			}
			w.process(ctx, cmd)
		}
	}
}

// Shutdown waits for Run to return.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process runs one command and always answers it. A panic is converted to
// ErrCommandFailed so the loop keeps going.
func (w *InMemoryWorker) process(ctx context.Context, cmd queue.Command) { //nolint:gocritic // hugeParam: passed by value for channel semantics
	start := time.Now()
	res := w.execute(ctx, cmd)
	metrics.RecordCommandLatency(float64(time.Since(start).Milliseconds()))
	if res.Err != nil {
		w.logger.Debug(ctx, "command rejected",
			logger.Career(cmd.CareerID),
			logger.String("kind", cmd.Kind),
			logger.Error(res.Err),
		)
	} else {
		metrics.RecordCommandProcessed(cmd.Kind)
	}
	if cmd.Reply != nil {
		select {
		case cmd.Reply <- res:
		default:
			w.logger.Warn(ctx, "reply dropped", logger.Career(cmd.CareerID), logger.String("kind", cmd.Kind))
		}
	}
}

func (w *InMemoryWorker) execute(ctx context.Context, cmd queue.Command) (res queue.Result) { //nolint:gocritic // hugeParam
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordCommandFailed()
			w.logger.Error(ctx, "command panicked",
				logger.Career(cmd.CareerID),
				logger.String("kind", cmd.Kind),
				logger.Any("panic", r),
				logger.String("stack", string(debug.Stack())),
			)
			res = queue.Result{Err: fmt.Errorf("%w: %s: %v", ErrCommandFailed, cmd.Kind, r)}
		}
	}()
	v, err := cmd.Run(ctx)
	return queue.Result{Value: v, Err: err}
}

// Pool owns one queue and one worker per shard.
type Pool struct {
	queues  []*queue.InMemoryQueue
	workers []*InMemoryWorker

	mu      sync.RWMutex
	stopped bool

	logger logger.Logger
}

// NewPool creates workerCount shards, each with a queue of queueSize.
func NewPool(workerCount, queueSize int) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		queues:  make([]*queue.InMemoryQueue, workerCount),
		workers: make([]*InMemoryWorker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range workerCount {
		p.queues[i] = queue.NewInMemoryQueue(queue.WithCapacity(queueSize))
		p.workers[i] = NewInMemoryWorker(p.queues[i], WithLogger(p.logger), WithName("worker-"+strconv.Itoa(i)))
	}
	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateQueueCapacity(workerCount * p.queues[0].Capacity())
	return p
}

// Start starts all workers.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Size returns the number of shards.
func (p *Pool) Size() int { return len(p.workers) }

// Shard returns the shard index careerID is pinned to.
func (p *Pool) Shard(careerID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(careerID))
	return int(h.Sum32() % uint32(len(p.queues))) //nolint:gosec // len is positive
}

// Submit enqueues cmd on its career's shard without blocking.
func (p *Pool) Submit(ctx context.Context, cmd queue.Command) error { //nolint:gocritic // hugeParam
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	if err := p.queues[p.Shard(cmd.CareerID)].Enqueue(ctx, cmd); err != nil {
		switch {
		case errors.Is(err, queue.ErrQueueFull):
			return fmt.Errorf("%w: %s: %w", ErrBusy, cmd.CareerID, err)
		case errors.Is(err, queue.ErrStopped):
			return fmt.Errorf("%w: %w", ErrStopped, err)
		}
		return err
	}
	metrics.UpdateQueueSize(p.Pending(ctx))
	return nil
}

// Do submits cmd and waits for its result. Submission failures are wrapped
// in ErrRejected. A context that ends while waiting leaves the command queued.
func (p *Pool) Do(ctx context.Context, cmd queue.Command) (any, error) { //nolint:gocritic // hugeParam
	if cmd.Reply == nil {
		cmd.Reply = make(chan queue.Result, 1)
	}
	if err := p.Submit(ctx, cmd); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRejected, err)
	}
	select {
	case res := <-cmd.Reply:
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Pending returns the number of queued commands across shards.
func (p *Pool) Pending(ctx context.Context) int {
	n := 0
	for _, q := range p.queues {
		n += q.Len(ctx)
	}
	return n
}

// Shutdown closes every queue and waits for the workers to drain.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	for _, q := range p.queues {
		if err := q.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}
	p.mu.Unlock()

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()
	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	return nil
}
