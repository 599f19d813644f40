// AngelaMos | 2026
// dto.go

package logbook

type SubmitRequest struct {
	Habits []string `json:"habits" validate:"required,min=1,dive,required"`
	Notes  string   `json:"notes"  validate:"max=2000"`
}

type TodayResponse struct {
	Date   string `json:"date"`
	Logged bool   `json:"logged"`
}

type EntryResponse struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	Habit     string  `json:"habit"`
	Notes     string  `json:"notes"`
	EcoPoints float64 `json:"eco_points"`
}

func ToEntryResponses(entries []LogEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = EntryResponse{
			ID:        e.ID,
			Date:      e.Date,
			Habit:     e.Habit,
			Notes:     e.Notes,
			EcoPoints: e.EcoPoints,
		}
	}
	return out
}
