// AngelaMos | 2026
// repository.go

package logbook

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/greensteps/internal/core"
)

type Repository interface {
	ExistsForDate(ctx context.Context, userID int64, date string) (bool, error)
	Create(ctx context.Context, entry *LogEntry) error
	ListByUser(ctx context.Context, userID int64) ([]LogEntry, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) ExistsForDate(
	ctx context.Context,
	userID int64,
	date string,
) (bool, error) {
	query := r.db.Rebind(`
		SELECT EXISTS(
			SELECT 1 FROM logs WHERE user_id = ? AND date = ?
		)`)

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, date); err != nil {
		return false, fmt.Errorf("check log exists: %w", err)
	}

	return exists, nil
}

func (r *repository) Create(ctx context.Context, entry *LogEntry) error {
	query := r.db.Rebind(`
		INSERT INTO logs (user_id, date, habit, notes, eco_points)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.db.GetContext(ctx, &entry.ID, query,
		entry.UserID,
		entry.Date,
		entry.Habit,
		entry.Notes,
		entry.EcoPoints,
	)
	if err != nil {
		return fmt.Errorf("create log entry: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID int64,
) ([]LogEntry, error) {
	query := r.db.Rebind(`
		SELECT id, user_id,
			COALESCE(date, '') AS date,
			COALESCE(habit, '') AS habit,
			COALESCE(notes, '') AS notes,
			COALESCE(eco_points, 0) AS eco_points
		FROM logs
		WHERE user_id = ?
		ORDER BY date, id`)

	var entries []LogEntry
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}

	return entries, nil
}
