// AngelaMos | 2026
// entity.go

package stats

type DailyTotal struct {
	Date        string  `db:"date"         json:"date"`
	TotalPoints float64 `db:"total_points" json:"total_points"`
}

type Summary struct {
	DailyTotals []DailyTotal `json:"daily_totals"`
	TotalPoints float64      `json:"total_points"`
	DaysLogged  int          `json:"days_logged"`
	Badges      []Badge      `json:"badges"`
}
