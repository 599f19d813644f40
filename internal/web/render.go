// AngelaMos | 2026
// render.go

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/carterperez-dev/greensteps/internal/habit"
	"github.com/carterperez-dev/greensteps/internal/stats"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageData struct {
	Mode       string
	Notice     *Notice
	SideNotice *Notice

	LoggedIn      bool
	Email         string
	Today         string
	AlreadyLogged bool
	Habits        []habit.Habit

	HasStats    bool
	TotalPoints float64
	DaysLogged  int
	Badges      []string

	HasGlobal bool
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// render buffers the page so a template error still yields a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.fail(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	//nolint:errcheck // best-effort response write
	_, _ = buf.WriteTo(w)
}

func (h *Handler) writeChart(
	w http.ResponseWriter,
	r *http.Request,
	totals []stats.DailyTotal,
	draw func(io.Writer, []stats.DailyTotal) error,
) {
	if len(totals) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := draw(&buf, totals); err != nil {
		h.fail(w, r, fmt.Errorf("render chart: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	//nolint:errcheck // best-effort response write
	_, _ = buf.WriteTo(w)
}
