package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/AlibekovAA/carsle-auth/internal/common/db/migrations"
	"github.com/AlibekovAA/carsle-auth/internal/common/logger"
	"github.com/AlibekovAA/carsle-auth/internal/observability/metrics"
)

type gooseLogger struct {
	log *logger.Logger
}

func (g gooseLogger) Printf(format string, args ...interface{}) {
	g.log.Infof(format, args...)
}

func (g gooseLogger) Fatalf(format string, args ...interface{}) {
	g.log.Fatalf(format, args...)
}

// RunMigrations applies the embedded goose migrations. It takes the already connected pool so a
// database that is still starting has been waited for by NewPool.
func RunMigrations(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool) error {
	sqlDB := migrationDB(pool)
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	metrics.DBMigrationVersion.Set(float64(version))
	log.Infof("database schema at version %d", version)

	return nil
}

// migrationDB opens a database/sql handle with the pool's connection settings for goose.
func migrationDB(pool *pgxpool.Pool) *sql.DB {
	return stdlib.OpenDB(*pool.Config().ConnConfig)
}
