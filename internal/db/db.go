package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	_ "github.com/orgball2608/piazza/internal/migrations"
	"github.com/orgball2608/piazza/pkg/config"
	"github.com/orgball2608/piazza/pkg/logger"
	"github.com/orgball2608/piazza/pkg/retry"
)

// Open returns a database/sql handle for goose. Request traffic goes through pgxpool.
func Open(cfg *config.Config) (*sql.DB, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}

	conn, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	return conn, nil
}

// Migrate waits for the database and applies every registered Go migration.
func Migrate(ctx context.Context, log logger.Logger, cfg *config.Config) error {
	conn, err := Open(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := retry.Do(ctx, log, "migration ping", conn.PingContext, retry.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
