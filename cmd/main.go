package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/matchday/internal/adapters/http/api"
	"github.com/okian/matchday/internal/adapters/http/live"
	"github.com/okian/matchday/internal/adapters/recorder"
	"github.com/okian/matchday/internal/adapters/repository"
	app "github.com/okian/matchday/internal/app"
	"github.com/okian/matchday/internal/config"
	"github.com/okian/matchday/internal/domain/catalog"
	"github.com/okian/matchday/pkg/logger"
	"github.com/okian/matchday/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 30 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		fmt.Fprintln(os.Stderr, "failed to initialize logging:", err)
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	if err := logger.InitWith(os.Stdout, cfg.LogFormat); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logging:", err)
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "server exited", logger.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// components is everything run starts and later stops.
type components struct {
	svc     *app.Service
	hub     *live.Hub
	handler http.Handler
}

// build wires the service and HTTP layer from cfg and starts the service.
func build(ctx context.Context, cfg *config.Config) (*components, error) {
	log := logger.Get()

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		c, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		cat = c
	}

	store, err := repository.Open(ctx, cfg.Storage,
		repository.WithSQLitePath(cfg.SQLitePath),
		repository.WithRedisURL(cfg.RedisURL),
	)
	if err != nil {
		return nil, fmt.Errorf("save store: %w", err)
	}

	var rec recorder.Recorder = recorder.Noop{}
	if cfg.HistoryPath != "" {
		r, err := recorder.NewSQLiteRecorder(ctx, cfg.HistoryPath)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("history: %w", err)
		}
		rec = r
	}

	hub := live.NewHub()
	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithStore(store),
		app.WithRecorder(rec),
		app.WithCatalog(cat),
		app.WithSeed(cfg.Seed),
		app.WithPublisher(hub),
		app.WithAutosaveDebounce(cfg.AutosaveDebounce()),
		app.WithAutosaveRetrySchedule(cfg.AutosaveRetryCron),
		app.WithTickIntervals(cfg.TickNormal(), cfg.TickFast()),
	)
	if err := svc.Start(ctx); err != nil {
		_ = rec.Close()
		_ = store.Close()
		return nil, fmt.Errorf("start service: %w", err)
	}
	log.Info(ctx, "components ready",
		logger.String("storage", cfg.Storage),
		logger.Bool("history", cfg.HistoryPath != ""),
		logger.Int64("seed", cfg.Seed),
	)
	return &components{
		svc:     svc,
		hub:     hub,
		handler: api.NewServer(svc, hub).Handler(),
	}, nil
}

func (c *components) close() {
	c.hub.Close()
	c.svc.Stop()
}

// run serves HTTP until ctx is canceled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()
	c, err := build(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.close()

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           c.handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// startSystemMetricsUpdater refreshes process metrics until ctx is canceled.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
