package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/servicelink/admin-service/internal/config"
)

const redisStartupPing = 2 * time.Second

// ErrRedisDisabled is returned by Ping when Redis is switched off.
var ErrRedisDisabled = errors.New("redis disabled")

// Redis wraps the go-redis client backing the dashboard cache and the
// lifecycle audit stream. Neither is required for the admin workflows, so an
// unreachable server is logged and the client is kept for later retries.
type Redis struct {
	Client *redis.Client
}

// NewRedis builds the client. With REDIS_ENABLED=false the wrapper carries
// no client and every Redis-backed feature stays off.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if !cfg.Enabled {
		logger.Info("redis disabled; dashboard cache and audit stream are off")
		return &Redis{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisStartupPing)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable at startup", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}

	return &Redis{Client: client}
}

// Enabled reports whether a client was configured.
func (r *Redis) Enabled() bool {
	return r != nil && r.Client != nil
}

// Close closes the client.
func (r *Redis) Close() error {
	if !r.Enabled() {
		return nil
	}
	return r.Client.Close()
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if !r.Enabled() {
		return ErrRedisDisabled
	}
	return r.Client.Ping(ctx).Err()
}
