package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/tradejournal/tradejournal-server/internal/config"
	"github.com/tradejournal/tradejournal-server/internal/health"
	storepkg "github.com/tradejournal/tradejournal-server/internal/store"
	storefs "github.com/tradejournal/tradejournal-server/internal/store/firestore"
	storemem "github.com/tradejournal/tradejournal-server/internal/store/memory"
	storesql "github.com/tradejournal/tradejournal-server/internal/store/sqlstore"
)

// Closer releases backend resources.
type Closer func() error

func noopCloser() error { return nil }

// NewStore resolves the backend named by cfg.DBDriver once. Network backends
// get an async bootstrap check so startup is not blocked on them.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, Closer, error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		log.Info().Msg("using in-memory store with sample data")
		return storemem.NewSeeded(), noopCloser, nil

	case config.DriverSQLite:
		db, err := storesql.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		s, err := storesql.New(ctx, db, storesql.SQLite, cfg.CollectionBase)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, nil, fmt.Errorf("TRADEJOURNAL_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		// Open connection synchronously since health checks need it immediately
		db, err := storesql.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		s, err := storesql.New(ctx, db, storesql.Postgres, cfg.CollectionBase)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		bootstrap(ctx, cfg, log, s)
		return s, s.Close, nil

	case config.DriverFirestore:
		var opts []option.ClientOption
		if cfg.FirebaseCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
		}
		client, err := storefs.Open(ctx, cfg.FirebaseProjectID, cfg.FirebaseDatabaseID, opts...)
		if err != nil {
			return nil, nil, err
		}
		s := storefs.New(client, cfg.CollectionBase, log)
		bootstrap(ctx, cfg, log, s)
		return s, s.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}

// bootstrap pings the backend in the background until it answers or the
// configured bootstrap timeout runs out.
func bootstrap(ctx context.Context, cfg *config.Config, log zerolog.Logger, p health.HealthPinger) {
	go func() {
		if err := bootstrapPing(ctx, cfg, log, p); err != nil {
			log.Warn().Err(err).Str("driver", cfg.DBDriver).Msg("store bootstrap check failed")
		} else {
			log.Debug().Str("driver", cfg.DBDriver).Msg("store bootstrap check completed")
		}
	}()
}

// bootstrapPing retries HealthPing with exponential backoff.
func bootstrapPing(ctx context.Context, cfg *config.Config, log zerolog.Logger, p health.HealthPinger) error {
	bootstrapCtx, cancel := context.WithTimeout(ctx, cfg.BootstrapTimeout())
	defer cancel()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = 0 // bounded by bootstrapCtx

	op := func() error { return p.HealthPing(bootstrapCtx) }
	notify := func(err error, wait time.Duration) {
		log.Debug().Err(err).Dur("retry_in", wait).Str("driver", cfg.DBDriver).Msg("store not ready")
	}
	return backoff.RetryNotify(op, backoff.WithContext(b, bootstrapCtx), notify)
}
