package identity

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptLimiter throttles repeated failed logins per key.
type AttemptLimiter interface {
	Blocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// RedisAttemptLimiter counts failures in Redis with a fixed window per key.
type RedisAttemptLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
	prefix string
}

const defaultAttemptWindow = 15 * time.Minute

// NewRedisAttemptLimiter builds a limiter. A nil client yields a limiter that never blocks.
func NewRedisAttemptLimiter(client *redis.Client, maxAttempts int, window time.Duration) AttemptLimiter {
	if client == nil || maxAttempts <= 0 {
		return noopLimiter{}
	}
	if window <= 0 {
		window = defaultAttemptWindow
	}
	return &RedisAttemptLimiter{
		client: client,
		max:    int64(maxAttempts),
		window: window,
		prefix: "login_attempts:",
	}
}

func (l *RedisAttemptLimiter) Blocked(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, l.prefix+key).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n >= l.max, nil
}

// RecordFailure bumps the counter and arms its TTL in one MULTI/EXEC. EXPIRE NX
// leaves a running window alone but also heals a counter that lost its TTL.
func (l *RedisAttemptLimiter) RecordFailure(ctx context.Context, key string) error {
	k := l.prefix + key
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.window)
		return nil
	})
	return err
}

func (l *RedisAttemptLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.prefix+key).Err()
}

type noopLimiter struct{}

func (noopLimiter) Blocked(context.Context, string) (bool, error) { return false, nil }
func (noopLimiter) RecordFailure(context.Context, string) error   { return nil }
func (noopLimiter) Reset(context.Context, string) error           { return nil }
