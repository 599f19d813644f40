// AngelaMos | 2026
// entity.go

package logbook

// LogEntry is one habit on one day. EcoPoints is frozen at insert time.
type LogEntry struct {
	ID        int64   `db:"id"`
	UserID    int64   `db:"user_id"`
	Date      string  `db:"date"`
	Habit     string  `db:"habit"`
	Notes     string  `db:"notes"`
	EcoPoints float64 `db:"eco_points"`
}
