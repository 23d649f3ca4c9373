// Package redis wires the optional Redis connection: a fixed-window rate
// limiter and a pub/sub sink for task events.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gaspigz/taskManagerClg/internal/config"
	goredis "github.com/redis/go-redis/v9"
)

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 2 * time.Second

// NewClient connects to Redis. It returns (nil, nil) when no address is
// configured, and an error when the server cannot be reached.
func NewClient(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) (*goredis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	if log == nil {
		log = slog.Default()
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info("redis connection established", slog.Int("db", cfg.DB))
	return client, nil
}
