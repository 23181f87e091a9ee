package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE statements are re-run on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillGradeStars(db); err != nil {
		return fmt.Errorf("backfilling grade stars: %w", err)
	}
	return nil
}

// migrateBackfillGradeStars fills grade_stars for rows written before the
// column existed, deriving it from the stored tier name.
func migrateBackfillGradeStars(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(), `UPDATE survey_results
		SET grade_stars = CASE grade_name
			WHEN '최우수' THEN 3
			WHEN '양호' THEN 2
			ELSE 1
		END
		WHERE grade_stars = 0`)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS survey_results (
		id            TEXT PRIMARY KEY,
		cafe_name     TEXT NOT NULL,
		cafe_address  TEXT NOT NULL DEFAULT '',
		gps_enabled   INTEGER NOT NULL DEFAULT 0,
		lat           REAL,
		lng           REAL,
		answers       TEXT NOT NULL DEFAULT '{}',
		answers_bool  TEXT NOT NULL DEFAULT '{}',
		grade_name    TEXT NOT NULL
		              CHECK(grade_name IN ('최우수','양호','기초')),
		grade_emoji   TEXT NOT NULL DEFAULT '',
		grade_msg     TEXT NOT NULL DEFAULT '',
		grade_percent REAL NOT NULL DEFAULT 0,
		selected_cafe TEXT,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_survey_results_created ON survey_results(created_at)`,

	`ALTER TABLE survey_results ADD COLUMN grade_stars INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE survey_results ADD COLUMN tags TEXT NOT NULL DEFAULT '[]'`,

	`CREATE TABLE IF NOT EXISTS reports (
		id            TEXT PRIMARY KEY,
		context       TEXT NOT NULL DEFAULT 'menu'
		              CHECK(context IN ('survey','mapSearch','mapOverview','menu')),
		context_label TEXT NOT NULL,
		message       TEXT NOT NULL CHECK(length(trim(message)) > 0),
		selected_cafe TEXT,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at)`,
}
