package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kapu/figures-review-go/internal/adapter"
	"github.com/kapu/figures-review-go/internal/api"
	"github.com/kapu/figures-review-go/internal/config"
	"github.com/kapu/figures-review-go/internal/format"
	"github.com/kapu/figures-review-go/internal/review"
	"github.com/kapu/figures-review-go/internal/service/session"
	"go.uber.org/zap"
)

// Container bundles the assembled services shared by the CLI commands and the
// review UI.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Client    *api.Client
	Review    *review.Service
	Formatter *adapter.ResponseFormatter
	Sessions  session.Store

	closers []func()
}

// Build wires the API client, the review components and the session store.
// The Redis session store is optional; when it cannot be reached the container
// falls back to an in-memory store and logs a warning.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	loc, err := time.LoadLocation(cfg.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load display timezone: %w", err)
	}
	format.SetDisplayLocation(loc)

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger.Named("api"))
	reviewSvc := review.NewService(client, review.ListOptions{
		ReviewPageSize:  cfg.Paging.ReviewPageSize,
		ListPageSize:    cfg.Paging.ListPageSize,
		MonthlyPageSize: cfg.Paging.MonthlyPageSize,
	}, logger)

	var sessions session.Store = session.NewMemoryStore()
	if cfg.Session.Enabled {
		redisStore, redisErr := session.NewRedisStore(session.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Session.TTL,
		}, logger.Named("session"))
		if redisErr != nil {
			logger.Warn("Session store unavailable, using in-memory sessions", zap.Error(redisErr))
		} else {
			sessions = redisStore
		}
	}
	closers = append(closers, func() {
		_ = sessions.Close()
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("Container ready",
		zap.String("api", client.BaseURL()),
		zap.Duration("timeout", cfg.API.Timeout),
		zap.Bool("session_store", cfg.Session.Enabled),
	)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Client:    client,
		Review:    reviewSvc,
		Formatter: adapter.NewResponseFormatter(),
		Sessions:  sessions,
		closers:   closers,
	}, nil
}

// Close releases what Build opened, newest first.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
