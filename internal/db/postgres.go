package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres creates a connection pool to PostgreSQL and applies the
// schema.
func ConnectPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := MigratePostgres(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// MigratePostgres creates the result and report tables if missing.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range pgMigrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres migration %d: %w", i, err)
		}
	}
	return nil
}

var pgMigrations = []string{
	`CREATE TABLE IF NOT EXISTS survey_results (
		id            TEXT PRIMARY KEY,
		cafe_name     TEXT NOT NULL,
		cafe_address  TEXT NOT NULL DEFAULT '',
		gps_enabled   BOOLEAN NOT NULL DEFAULT FALSE,
		lat           DOUBLE PRECISION,
		lng           DOUBLE PRECISION,
		answers       JSONB NOT NULL DEFAULT '{}',
		answers_bool  JSONB NOT NULL DEFAULT '{}',
		grade_name    TEXT NOT NULL,
		grade_emoji   TEXT NOT NULL DEFAULT '',
		grade_stars   INTEGER NOT NULL DEFAULT 1,
		grade_msg     TEXT NOT NULL DEFAULT '',
		grade_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
		selected_cafe JSONB,
		tags          JSONB NOT NULL DEFAULT '[]',
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_survey_results_created ON survey_results(created_at)`,
	`CREATE TABLE IF NOT EXISTS reports (
		id            TEXT PRIMARY KEY,
		context       TEXT NOT NULL DEFAULT 'menu',
		context_label TEXT NOT NULL,
		message       TEXT NOT NULL,
		selected_cafe JSONB,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at)`,
}
