package data

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KotFed0t/meme_launchpad_bot/config"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 5 * time.Second

// NewRedisClient connects to the metadata cache redis and checks it answers.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	pong, err := rdb.Ping(pingCtx).Result()
	if err != nil {
		_ = rdb.Close()
		slog.Error("Error while connecting Redis", slog.String("error", err.Error()))
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	slog.Info("Redis connected", slog.String("pong", pong), slog.String("addr", rdb.Options().Addr))

	return rdb, nil
}
