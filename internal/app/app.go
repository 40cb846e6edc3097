package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/hoopcast/nba-ingest/external/nbastats"
	"github.com/hoopcast/nba-ingest/internal/config"
	"github.com/hoopcast/nba-ingest/internal/domain/game"
	"github.com/hoopcast/nba-ingest/internal/infrastructure/repository/memory"
	"github.com/hoopcast/nba-ingest/internal/infrastructure/repository/postgres"
	"github.com/hoopcast/nba-ingest/internal/platform/logging"
	"github.com/hoopcast/nba-ingest/internal/platform/resilience"
	"github.com/hoopcast/nba-ingest/internal/usecase"
)

// OpenDB connects to Postgres through the otelsql driver wrapper and checks
// the connection before returning.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := DatabaseURL(cfg)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %w", usecase.ErrStoreUnavailable, err)
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
		db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping db: %w", usecase.ErrStoreUnavailable, err)
	}
	return db, nil
}

func NewNBAStatsClient(cfg config.Config, logger *logging.Logger) *nbastats.Client {
	return nbastats.NewClient(nbastats.ClientConfig{
		HTTPClient:   newTracedHTTPClient(cfg),
		BaseURL:      cfg.NBAAPIBaseURL,
		Timeout:      cfg.NBAAPITimeout,
		RequestDelay: cfg.NBAAPIDelay,
		MaxRetries:   cfg.NBAAPIMaxRetries,
		Logger:       logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NBAAPICircuitEnabled,
			FailureThreshold: cfg.NBAAPICircuitFailureCount,
			OpenTimeout:      cfg.NBAAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NBAAPICircuitHalfOpenMaxReq,
		},
	})
}

// newTracedHTTPClient opens a client span for every provider request,
// retries included.
func newTracedHTTPClient(cfg config.Config) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "nbastats " + r.Method + " " + r.URL.Path
			}),
		),
		Timeout: cfg.NBAAPITimeout,
	}
}

type IngestionOptions struct {
	// DryRun keeps reading teams and existing games from the store but
	// collects new games in memory instead of committing them.
	DryRun bool
}

func NewGameIngestionService(cfg config.Config, db *sqlx.DB, source usecase.GameSource, logger *logging.Logger, opts IngestionOptions) *usecase.GameIngestionService {
	var gameRepo game.Repository = postgres.NewGameRepository(db)
	if opts.DryRun {
		gameRepo = memory.NewDryRunGameRepository(gameRepo)
	}

	return usecase.NewGameIngestionService(
		source,
		postgres.NewTeamRepository(db),
		gameRepo,
		usecase.GameIngestionConfig{
			SeasonDelay:          cfg.IngestSeasonDelay,
			BatchSize:            cfg.IngestBatchSize,
			RejectMalformedDates: cfg.IngestRejectMalformedDates,
		},
		logger,
	)
}

func NewTeamSeedService(db *sqlx.DB, logger *logging.Logger) *usecase.TeamSeedService {
	return usecase.NewTeamSeedService(postgres.NewTeamRepository(db), logger)
}
