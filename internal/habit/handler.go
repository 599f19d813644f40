// AngelaMos | 2026
// handler.go

package habit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/greensteps/internal/core"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/habits", h.List)
}

func (h *Handler) List(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, h.catalog.Habits())
}
