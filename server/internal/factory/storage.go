package factory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/kachalmers/tuiter/server/internal/config"
	"github.com/kachalmers/tuiter/server/internal/localstate"
	storepkg "github.com/kachalmers/tuiter/server/internal/store"
	"github.com/kachalmers/tuiter/server/internal/store/memory"
	storepg "github.com/kachalmers/tuiter/server/internal/store/postgres"
	storesqlite "github.com/kachalmers/tuiter/server/internal/store/sqlite"
)

// NewStore returns the store.Store selected by cfg.DBDriver.
// Postgres is dialled with exponential backoff until cfg.ConnectTimeout elapses,
// so the backend can start alongside its database container.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		log.Info().Str("driver", cfg.DBDriver).Msg("using in-memory store")
		return memory.New(), nil
	case config.DriverSQLite:
		path := cfg.SQLitePath
		if path == "" {
			p, err := localstate.DBPath()
			if err != nil {
				return nil, fmt.Errorf("sqlite path: %w", err)
			}
			path = p
		}
		s, err := storesqlite.New(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		log.Info().Str("driver", cfg.DBDriver).Str("path", path).Msg("sqlite store ready")
		return s, nil
	case config.DriverPostgres:
		return newPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}

func newPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("TUITER_SERVER_POSTGRES_DSN is required when DB_DRIVER=postgres")
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = cfg.ConnectTimeout

	var db *sql.DB
	attempt := 0
	op := func() error {
		attempt++
		d, err := storepg.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Debug().Err(err).Int("attempt", attempt).Msg("postgres not ready")
			return err
		}
		db = d
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	s, err := storepg.NewWithDB(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Str("driver", cfg.DBDriver).Int("attempts", attempt).Msg("postgres store ready")
	return s, nil
}
