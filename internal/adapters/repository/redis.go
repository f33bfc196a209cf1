package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix   = "matchday:save:"
	redisIndexKey    = "matchday:saves"
	redisPingTimeout = 5 * time.Second
)

// RedisStore keeps each save in a hash and indexes slots in a sorted set
// scored by save time.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	pctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStoreWithClient(client), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(slot string) string { return redisKeyPrefix + slot }

// Put implements Store.
func (s *RedisStore) Put(ctx context.Context, slot Slot, doc []byte) error {
	if err := ValidSlot(slot.Name); err != nil {
		return err
	}
	meta, err := json.Marshal(slot)
	if err != nil {
		return fmt.Errorf("encode slot: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, redisKey(slot.Name), "doc", doc, "meta", meta)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(slot.LastSaved.UnixMilli()), Member: slot.Name})
		return nil
	})
	if err != nil {
		return fmt.Errorf("put save %s: %w", slot.Name, err)
	}
	return nil
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, slot string) ([]byte, error) {
	doc, err := s.client.HGet(ctx, redisKey(slot), "doc").Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("get save %s: %w", slot, err)
	}
	return doc, nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, slot string) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, redisKey(slot))
		pipe.ZRem(ctx, redisIndexKey, slot)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete save %s: %w", slot, err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, slot)
	}
	return nil
}

// List implements Store.
func (s *RedisStore) List(ctx context.Context) ([]Slot, error) {
	names, err := s.client.ZRevRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	out := make([]Slot, 0, len(names))
	for _, name := range names {
		raw, err := s.client.HGet(ctx, redisKey(name), "meta").Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("list saves: %w", err)
		}
		var sl Slot
		if err := json.Unmarshal(raw, &sl); err != nil {
			continue
		}
		out = append(out, sl)
	}
	return out, nil
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
