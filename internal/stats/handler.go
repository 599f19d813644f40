// AngelaMos | 2026
// handler.go

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/greensteps/internal/core"
	"github.com/carterperez-dev/greensteps/internal/logbook"
)

type Handler struct {
	service *Service
	users   logbook.UserResolver
}

func NewHandler(service *Service, users logbook.UserResolver) *Handler {
	return &Handler{service: service, users: users}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	requireSession func(http.Handler) http.Handler,
) {
	r.Route("/stats", func(r chi.Router) {
		r.Use(requireSession)

		r.Get("/me", h.GetMine)
		r.Get("/global", h.GetGlobal)
	})
}

type BadgeResponse struct {
	ID    Badge  `json:"id"`
	Title string `json:"title"`
}

type SummaryResponse struct {
	DailyTotals []DailyTotal    `json:"daily_totals"`
	TotalPoints float64         `json:"total_points"`
	DaysLogged  int             `json:"days_logged"`
	Badges      []BadgeResponse `json:"badges"`
}

func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := logbook.ResolveUser(w, r, h.users)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	badges := make([]BadgeResponse, len(summary.Badges))
	for i, b := range summary.Badges {
		badges[i] = BadgeResponse{ID: b, Title: b.Title()}
	}

	core.OK(w, SummaryResponse{
		DailyTotals: summary.DailyTotals,
		TotalPoints: summary.TotalPoints,
		DaysLogged:  summary.DaysLogged,
		Badges:      badges,
	})
}

func (h *Handler) GetGlobal(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.GlobalDailyTotals(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, totals)
}
