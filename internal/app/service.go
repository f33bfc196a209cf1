// Package service owns the live careers. Every change to a career runs as a
// command on the worker the career is pinned to, so a career is never
// mutated concurrently; HTTP handlers and the match clock both go through
// the same path.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/okian/matchday/internal/adapters/mq/queue"
	"github.com/okian/matchday/internal/adapters/mq/worker"
	"github.com/okian/matchday/internal/adapters/recorder"
	"github.com/okian/matchday/internal/adapters/repository"
	"github.com/okian/matchday/internal/domain/catalog"
	"github.com/okian/matchday/internal/domain/dedupe"
	"github.com/okian/matchday/internal/domain/random"
	"github.com/okian/matchday/pkg/logger"
	"github.com/okian/matchday/pkg/metrics"
)

// Defaults.
const (
	defaultQueueSize        = 1024
	defaultDedupeSize       = 50000
	defaultAutosaveDebounce = time.Second
	defaultRetrySchedule    = "@every 30s"
	defaultTickNormal       = 800 * time.Millisecond
	defaultTickFast         = 100 * time.Millisecond
	flushTimeout            = 10 * time.Second
)

// Service implements the dependencies required by the HTTP API.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*session

	// Core components
	pool      *worker.Pool
	deduper   dedupe.Deduper[queue.Result]
	store     repository.Store
	recorder  recorder.Recorder
	catalog   *catalog.Catalog
	publisher Publisher
	cron      *cron.Cron

	// Configuration
	workerCount      int
	queueSize        int
	dedupeSize       int
	seed             int64
	seeded           int64
	autosaveDebounce time.Duration
	retrySchedule    string
	tickNormal       time.Duration
	tickFast         time.Duration

	// State
	started       bool
	activeMatches atomic.Int64
	runCtx        context.Context
	cancel        context.CancelFunc
	stopCh        chan struct{}
	drivers       sync.WaitGroup

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sessions:         make(map[string]*session),
		workerCount:      runtime.NumCPU(),
		queueSize:        defaultQueueSize,
		dedupeSize:       defaultDedupeSize,
		autosaveDebounce: defaultAutosaveDebounce,
		retrySchedule:    defaultRetrySchedule,
		tickNormal:       defaultTickNormal,
		tickFast:         defaultTickFast,
		publisher:        nopPublisher{},
		recorder:         recorder.Noop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the worker pool and the autosave retry job.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}

	s.logger.Info(ctx, "starting career service...")

	s.deduper = dedupe.NewInMemoryDeduper[queue.Result](dedupe.WithMaxSize(s.dedupeSize))
	s.pool = worker.NewPool(s.workerCount, s.queueSize)
	// Workers and clocks outlive the request that started the service.
	s.runCtx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.stopCh = make(chan struct{})
	s.pool.Start(s.runCtx)

	if s.retrySchedule != "" && s.autosaveDebounce > 0 {
		s.cron = cron.New()
		if _, err := s.cron.AddFunc(s.retrySchedule, s.retryDirty); err != nil {
			s.cancel()
			_ = s.pool.Shutdown(ctx)
			return fmt.Errorf("autosave retry schedule %q: %w", s.retrySchedule, err)
		}
		s.cron.Start()
	}

	s.started = true
	s.logger.Info(ctx, "career service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Duration("autosaveDebounce", s.autosaveDebounce),
	)
	return nil
}

// Stop drains pending commands, flushes unsaved careers and closes the
// store and recorder.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	s.logger.Info(ctx, "stopping career service...")

	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	close(s.stopCh)
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
	}
	s.drivers.Wait()
	s.cancel()

	// Workers are gone; sessions can be touched directly.
	for _, sess := range s.snapshotSessions() {
		if sess.saveWait != nil {
			sess.saveWait.Stop()
		}
		if sess.dirty.Load() {
			s.autosave(ctx, sess)
		}
	}

	if err := s.recorder.Close(); err != nil {
		s.logger.Warn(ctx, "closing recorder", logger.Error(err))
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn(ctx, "closing store", logger.Error(err))
	}
	s.logger.Info(ctx, "career service stopped")
}

// Catalog returns the game data in use.
func (s *Service) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return catalog.Default()
	}
	return s.catalog
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"careers":     len(s.sessions),
	}
	if s.started {
		pending := s.pool.Pending(context.Background())
		stats["queueLength"] = pending
		stats["dedupeEntries"] = s.deduper.Size()
		metrics.UpdateQueueSize(pending)
		metrics.UpdateActiveSessions(len(s.sessions))
	}
	return stats
}

func (s *Service) addSession(sess *session) {
	s.mu.Lock()
	s.sessions[sess.id] = sess
	n := len(s.sessions)
	s.mu.Unlock()
	metrics.UpdateActiveSessions(n)
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

func (s *Service) lookup(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCareerNotFound, id)
	}
	return sess, nil
}

func (s *Service) snapshotSessions() []*session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

// newRandom returns the source for a new career. With a fixed seed, careers
// get consecutive seeds in creation order.
func (s *Service) newRandom() (random.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seed != 0 {
		seed := s.seed + s.seeded
		s.seeded++
		return random.NewSeeded(seed), nil
	}
	seed, err := random.NewSeed()
	if err != nil {
		return nil, err
	}
	return random.NewSeeded(seed), nil
}

// exec runs fn on the career's worker and waits for its reply. A non-empty
// commandID makes the call idempotent: a retry gets the first reply. When
// mutates is set, a successful fn schedules an autosave.
func (s *Service) exec(ctx context.Context, careerID, commandID, kind string, mutates bool, fn func(*session) (any, error)) (any, error) {
	sess, err := s.lookup(careerID)
	if err != nil {
		return nil, err
	}

	key := ""
	if commandID != "" {
		key = careerID + "/" + commandID
		if res, seen, done := s.deduper.Begin(ctx, key); seen {
			metrics.RecordCommandDuplicate()
			if !done {
				return nil, fmt.Errorf("%w: %s", ErrInFlight, commandID)
			}
			return res.Value, res.Err
		}
	} else {
		commandID = uuid.NewString()
	}

	run := func(ctx context.Context) (v any, err error) {
		completed := false
		defer func() {
			if key != "" && !completed {
				s.deduper.Forget(ctx, key)
			}
		}()
		v, err = fn(sess)
		if err == nil && mutates {
			s.markDirty(sess)
		}
		if key != "" {
			s.deduper.Complete(ctx, key, queue.Result{Value: v, Err: err})
			completed = true
		}
		return v, err
	}

	v, err := s.pool.Do(ctx, queue.NewCommand(commandID, careerID, kind, run))
	if key != "" && errors.Is(err, worker.ErrRejected) {
		s.deduper.Forget(ctx, key)
	}
	return v, err
}

// call is exec with a typed reply.
func call[T any](ctx context.Context, s *Service, careerID, commandID, kind string, mutates bool, fn func(*session) (T, error)) (T, error) {
	v, err := s.exec(ctx, careerID, commandID, kind, mutates, func(sess *session) (any, error) {
		return fn(sess)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: unexpected reply %T", worker.ErrCommandFailed, v)
	}
	return out, nil
}

func isBusy(err error) bool {
	return errors.Is(err, worker.ErrBusy)
}

// isStopping reports whether err means the pool no longer accepts work.
func isStopping(err error) bool {
	return errors.Is(err, worker.ErrStopped) || errors.Is(err, ErrNotStarted) || errors.Is(err, context.Canceled)
}
