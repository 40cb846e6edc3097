package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/hoopcast/nba-ingest/internal/app"
	"github.com/hoopcast/nba-ingest/internal/config"
	"github.com/hoopcast/nba-ingest/internal/observability"
	"github.com/hoopcast/nba-ingest/internal/platform/logging"
)

// commandContext lazily builds what a command needs. Nothing is loaded until a
// command asks for it, so flag validation runs without side effects.
type commandContext struct {
	envFile string

	cfg     config.Config
	logger  *logging.Logger
	runID   string
	db      *sqlx.DB
	loaded  bool
	closers []func(context.Context) error
}

func (c *commandContext) ensureRuntime(ctx context.Context) error {
	if c.loaded {
		return nil
	}

	if path := strings.TrimSpace(c.envFile); path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	c.runID = uuid.NewString()
	c.logger = logging.New(cfg.LogFormat, cfg.LogLevel).With(
		"run_id", c.runID,
		"service", cfg.ServiceName,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(c.logger)
	c.closers = append(c.closers, func(context.Context) error {
		_ = c.logger.Sync()
		return nil
	})

	shutdownTracing, err := observability.InitUptrace(cfg, c.logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	c.closers = append(c.closers, shutdownTracing)

	stopProfiling, err := observability.InitPyroscope(cfg, c.logger)
	if err != nil {
		c.logger.WarnContext(ctx, "pyroscope init failed, continuing without profiling", "error", err)
	} else {
		c.closers = append(c.closers, func(context.Context) error { return stopProfiling() })
	}

	c.cfg = cfg
	c.loaded = true
	return nil
}

func (c *commandContext) database(ctx context.Context) (*sqlx.DB, error) {
	if c.db != nil {
		return c.db, nil
	}
	db, err := app.OpenDB(ctx, c.cfg)
	if err != nil {
		return nil, err
	}
	c.db = db
	c.closers = append(c.closers, func(context.Context) error { return db.Close() })
	return db, nil
}

// close releases resources in reverse order of acquisition.
func (c *commandContext) close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
