// Package redislock serializes wallet mutations across service instances.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/hrwallet-backend/internal/config"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

const (
	retryInterval  = 50 * time.Millisecond
	releaseTimeout = 2 * time.Second
)

// Locker hands out short-lived Redis locks.
type Locker struct {
	client *redislock.Client
	ttl    time.Duration
	wait   time.Duration
	log    *slog.Logger
}

// NewClient connects to Redis and pings it.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// New creates a Locker. Locks expire after ttl; Obtain retries for at most wait.
func New(log *slog.Logger, rdb redis.UniversalClient, ttl, wait time.Duration) *Locker {
	return &Locker{
		client: redislock.New(rdb),
		ttl:    ttl,
		wait:   wait,
		log:    log.With("component", "redislock"),
	}
}

// Obtain takes the lock for key and returns its release function. When the
// lock stays taken for longer than the wait it fails with domain.ErrConflict.
func (l *Locker) Obtain(ctx context.Context, key string) (func(), error) {
	wctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	lock, err := l.client.Obtain(wctx, key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(retryInterval),
	})
	if errors.Is(err, redislock.ErrNotObtained) || (err != nil && wctx.Err() != nil && ctx.Err() == nil) {
		return nil, fmt.Errorf("%w: %s is busy", domain.ErrConflict, key)
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}

	return func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		if err := lock.Release(rctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.WarnContext(rctx, "release lock",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}, nil
}
