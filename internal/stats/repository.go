// AngelaMos | 2026
// repository.go

package stats

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/greensteps/internal/core"
)

type Repository interface {
	DailyTotals(ctx context.Context, userID int64) ([]DailyTotal, error)
	DaysLogged(ctx context.Context, userID int64) (int, error)
	GlobalDailyTotals(ctx context.Context) ([]DailyTotal, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Rows from older files may carry NULL dates or points. Undated rows are
// left out and missing points count as zero.
func (r *repository) DailyTotals(
	ctx context.Context,
	userID int64,
) ([]DailyTotal, error) {
	query := r.db.Rebind(`
		SELECT date, COALESCE(SUM(eco_points), 0) AS total_points
		FROM logs
		WHERE user_id = ? AND date IS NOT NULL
		GROUP BY date
		ORDER BY date`)

	totals := []DailyTotal{}
	if err := r.db.SelectContext(ctx, &totals, query, userID); err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}

	return totals, nil
}

func (r *repository) DaysLogged(ctx context.Context, userID int64) (int, error) {
	query := r.db.Rebind(`SELECT COUNT(DISTINCT date) FROM logs WHERE user_id = ?`)

	var days int
	if err := r.db.GetContext(ctx, &days, query, userID); err != nil {
		return 0, fmt.Errorf("days logged: %w", err)
	}

	return days, nil
}

func (r *repository) GlobalDailyTotals(ctx context.Context) ([]DailyTotal, error) {
	query := `
		SELECT date, COALESCE(SUM(eco_points), 0) AS total_points
		FROM logs
		WHERE date IS NOT NULL
		GROUP BY date
		ORDER BY date`

	totals := []DailyTotal{}
	if err := r.db.SelectContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("global daily totals: %w", err)
	}

	return totals, nil
}
