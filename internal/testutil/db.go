// AngelaMos | 2026
// db.go

package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/carterperez-dev/greensteps/internal/config"
	"github.com/carterperez-dev/greensteps/internal/core"
)

// legacySchema matches files written before the NOT NULL constraints,
// where every column except the ids may hold NULL.
var legacySchema = []string{
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT UNIQUE,
		password TEXT
	)`,
	`CREATE TABLE logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		date TEXT,
		habit TEXT,
		notes TEXT,
		eco_points REAL,
		FOREIGN KEY(user_id) REFERENCES users(id)
	)`,
}

// NewDatabase opens a migrated SQLite database in a per-test directory.
func NewDatabase(t *testing.T) *core.Database {
	t.Helper()

	db := open(t)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

// NewLegacyDatabase creates the nullable legacy tables first, then runs
// Migrate over them.
func NewLegacyDatabase(t *testing.T) *core.Database {
	t.Helper()

	ctx := context.Background()
	db := open(t)
	for _, stmt := range legacySchema {
		if _, err := db.DB.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("create legacy table: %v", err)
		}
	}
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate legacy database: %v", err)
	}

	return db
}

func open(t *testing.T) *core.Database {
	t.Helper()

	db, err := core.NewDatabase(context.Background(), config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    filepath.Join(t.TempDir(), "greensteps.db"),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// CountRows runs a COUNT(*) query with optional arguments.
func CountRows(t *testing.T, db *core.Database, query string, args ...any) int {
	t.Helper()

	var n int
	if err := db.DB.GetContext(context.Background(), &n, db.DB.Rebind(query), args...); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

// CreateUser inserts an account row and returns its id.
func CreateUser(t *testing.T, db *core.Database, email string) int64 {
	t.Helper()

	var id int64
	err := db.DB.GetContext(context.Background(), &id,
		db.DB.Rebind(`INSERT INTO users (email, password) VALUES (?, ?) RETURNING id`),
		email, "pw")
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return id
}
