package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/kapu/figures-review-go/internal/app"
	"github.com/kapu/figures-review-go/internal/config"
	"github.com/kapu/figures-review-go/internal/util"
	"go.uber.org/zap"
)

const buildTimeout = 10 * time.Second

// commandContext lazily assembles the container shared by every subcommand.
type commandContext struct {
	apiFlag *string

	once      sync.Once
	container *app.Container
	err       error
}

func newCommandContext(apiFlag *string) *commandContext {
	return &commandContext{apiFlag: apiFlag}
}

// ensureContainer loads config, opens the log sink and builds the services.
// Logs go to LOG_FILE; without one, plain commands log warnings to stderr and
// the full-screen review UI logs nothing.
func (c *commandContext) ensureContainer(ctx context.Context, stderr io.Writer) (*app.Container, error) {
	c.once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.err = err
			return
		}
		if c.apiFlag != nil {
			if err := cfg.OverrideBaseURL(*c.apiFlag); err != nil {
				c.err = fmt.Errorf("invalid --api: %w", err)
				return
			}
		}

		logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File, stderr)
		if err != nil {
			c.err = fmt.Errorf("failed to initialize logger: %w", err)
			return
		}

		buildCtx, cancel := context.WithTimeout(ctx, buildTimeout)
		defer cancel()
		container, err := app.Build(buildCtx, cfg, logger)
		if err != nil {
			_ = logger.Sync()
			c.err = fmt.Errorf("failed to assemble services: %w", err)
			return
		}
		c.container = container
	})
	return c.container, c.err
}

func (c *commandContext) close() {
	if c.container == nil {
		return
	}
	logger := c.container.Logger
	c.container.Close()
	if logger != nil {
		_ = logger.Sync()
	}
	c.container = nil
}

func (c *commandContext) withContainer(ctx context.Context, stderr io.Writer, fn func(*app.Container) error) error {
	container, err := c.ensureContainer(ctx, stderr)
	if err != nil {
		return err
	}
	defer c.close()
	if err := fn(container); err != nil {
		container.Logger.Debug("Command failed", zap.Error(err))
		return err
	}
	return nil
}
