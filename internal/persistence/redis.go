package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/interinest/marketplace/internal/config"
)

// Redis holds the client used by the login-attempt limiter.
type Redis struct {
	client *redis.Client
}

// OpenRedis builds the client and probes it once. An unreachable server is
// logged, not fatal: login throttling fails open until it comes back.
func OpenRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(probeCtx).Err(); err != nil {
		logger.Warn("redis unreachable; login throttling disabled until it recovers",
			zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}

	return &Redis{client: client}
}

// Client returns the go-redis client, nil when the store is detached.
func (r *Redis) Client() *redis.Client {
	if r == nil {
		return nil
	}
	return r.client
}

func (r *Redis) Close() {
	if r != nil && r.client != nil {
		_ = r.client.Close()
	}
}

// Ping backs the readiness probe.
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client() == nil {
		return ErrNotConfigured
	}
	return r.client.Ping(ctx).Err()
}
