package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KotFed0t/meme_launchpad_bot/config"
	"github.com/KotFed0t/meme_launchpad_bot/data"
	"github.com/KotFed0t/meme_launchpad_bot/data/cache"
	"github.com/KotFed0t/meme_launchpad_bot/data/session"
	"github.com/KotFed0t/meme_launchpad_bot/internal/conversation"
	"github.com/KotFed0t/meme_launchpad_bot/internal/externalApi/explorerApi"
	"github.com/KotFed0t/meme_launchpad_bot/internal/externalApi/launchpadApi"
	"github.com/KotFed0t/meme_launchpad_bot/internal/service/launchpadService"
)

// app is the orchestration core shared by every front-end.
type app struct {
	service  *launchpadService.LaunchpadService
	sessions *session.MemorySession
	engine   *conversation.Engine
	closers  []func()
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	chain, closeChain, err := launchpadApi.Dial(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to chain: %w", err)
	}
	a.closers = append(a.closers, closeChain)

	var contractCache launchpadService.Cache
	if cfg.Redis.Enabled {
		redisClient, err := data.NewRedisClient(ctx, cfg)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		contractCache = cache.NewRedisCache(redisClient, cfg)
	} else {
		contractCache = cache.NewMemoryCache(cfg)
	}

	// a nil *ExplorerApi must not end up inside a non-nil interface
	var explorer launchpadService.Explorer
	if cfg.Explorer.ApiURL != "" {
		explorer = explorerApi.New(cfg)
	} else {
		slog.Info("explorer api not configured, reverted transactions are reported without a reason")
	}

	a.service = launchpadService.New(cfg, chain, contractCache, explorer)
	a.sessions = session.NewMemorySession()
	a.engine = conversation.New(a.sessions, a.service)

	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
