package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shortlist/internal/config"
)

const DefaultTTL = 600 * time.Second

// Redis stores JSON-encoded result pages. When the server is unreachable
// every call becomes a no-op miss so listing keeps working uncached.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if !cfg.Enabled {
		return &Redis{ttl: ttl, logger: logger}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Warn("redis unavailable, bypassing cache", zap.String("addr", cfg.Addr()), zap.Error(err))
		}
		_ = client.Close()
		return &Redis{ttl: ttl, logger: logger}
	}

	return NewRedisWithClient(client, ttl, logger)
}

func NewRedisWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl, logger: logger}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

// Enabled reports whether a live client backs the cache.
func (r *Redis) Enabled() bool {
	return !r.isUnavailable()
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis error, bypassing cache", zap.Error(err))
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// DeleteByPrefix drops every key under prefix, e.g. after a dataset change.
func (r *Redis) DeleteByPrefix(ctx context.Context, prefix string) error {
	if r.isUnavailable() {
		return nil
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil
	}
	iter := r.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if err := r.client.Del(ctx, k).Err(); err != nil && r.logger != nil {
			r.logger.Warn("redis delete failed", zap.String("key", k), zap.Error(err))
		}
	}
	return iter.Err()
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}
