// AngelaMos | 2026
// schema.go

package core

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/greensteps/internal/config"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		email    TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS logs (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    INTEGER NOT NULL REFERENCES users(id),
		date       TEXT NOT NULL,
		habit      TEXT NOT NULL,
		notes      TEXT NOT NULL DEFAULT '',
		eco_points REAL NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_user_date ON logs (user_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_date ON logs (date)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id       BIGSERIAL PRIMARY KEY,
		email    TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS logs (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id),
		date       TEXT NOT NULL,
		habit      TEXT NOT NULL,
		notes      TEXT NOT NULL DEFAULT '',
		eco_points DOUBLE PRECISION NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_user_date ON logs (user_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_date ON logs (date)`,
}

// Migrate creates the users and logs tables. Safe to run against an
// existing database.
func (d *Database) Migrate(ctx context.Context) error {
	statements := sqliteSchema
	if d.Driver == config.DriverPostgres {
		statements = postgresSchema
	}

	return InTx(ctx, d.DB, func(tx *sqlx.Tx) error {
		for i, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}
