package database

import (
	"context"
	"fmt"
	"time"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/config"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store bundles the connection pool with the write serializer and the audit
// recorder that share it.
type Store struct {
	DB     *gorm.DB
	Writer *Writer
	Audit  *AuditRecorder
}

// Open connects with the configured retry policy and creates the schema if it
// is missing.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*Store, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	policy := RetryPolicy{Attempts: cfg.MaxRetries, Backoff: cfg.RetryBackoff}
	attempts := policy.attempts()

	var db *gorm.DB
	for attempt := 1; attempt <= attempts; attempt++ {
		logger.Info().
			Str("driver", cfg.Driver).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Msg("connecting to database")

		db, err = connect(ctx, dialector, logger)
		if err == nil {
			break
		}

		logger.Warn().Err(err).Int("attempt", attempt).Msg("failed to connect to database")
		if attempt < attempts {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("connect to database: %w", ctx.Err())
			case <-time.After(policy.delay(attempt)):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: connect after %d attempts: %w", ErrStoreUnavailable, attempts, err)
	}

	if err := Migrate(db); err != nil {
		if sqlDB, cerr := db.DB(); cerr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	logger.Info().Str("driver", cfg.Driver).Msg("connected to database, schema ready")

	return &Store{
		DB:     db,
		Writer: NewWriter(db, policy, logger),
		Audit:  NewAuditRecorder(logger),
	}, nil
}

// Migrate creates missing tables and indexes. It is safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(SQLiteDSN(cfg.Path, cfg.BusyTimeout)), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// SQLiteDSN enables WAL (readers never block on the writer), foreign keys
// (needed for ON DELETE CASCADE) and the busy timeout on every connection.
func SQLiteDSN(path string, busyTimeout time.Duration) string {
	return fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on",
		path, busyTimeout.Milliseconds())
}

func connect(ctx context.Context, dialector gorm.Dialector, logger zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(logger),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Debug().Msgf(format, args...)
}

func newGormLogger(logger zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(
		gormWriter{log: logger.With().Str("component", "gorm").Logger()},
		gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
