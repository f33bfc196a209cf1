package repository

import (
	"context"
	"fmt"
)

// Storage kinds accepted by Open.
const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
	KindRedis  = "redis"
)

type openConfig struct {
	sqlitePath string
	redisURL   string
}

// Option applies a configuration option to Open.
type Option func(*openConfig)

// WithSQLitePath sets the database file used by the sqlite kind.
func WithSQLitePath(path string) Option {
	return func(c *openConfig) {
		c.sqlitePath = path
	}
}

// WithRedisURL sets the server used by the redis kind.
func WithRedisURL(url string) Option {
	return func(c *openConfig) {
		c.redisURL = url
	}
}

// Open returns the Store for kind.
func Open(ctx context.Context, kind string, opts ...Option) (Store, error) {
	cfg := openConfig{sqlitePath: "matchday.db", redisURL: "redis://localhost:6379/0"}
	for _, opt := range opts {
		opt(&cfg)
	}
	switch kind {
	case KindMemory, "":
		return NewMemoryStore(), nil
	case KindSQLite:
		s, err := NewSQLiteStore(ctx, cfg.sqlitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindRedis:
		s, err := NewRedisStore(ctx, cfg.redisURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage kind %q", kind)
	}
}
