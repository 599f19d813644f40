// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func get(t *testing.T, h *Handler, path string) (int, ReadinessResponse) {
	t.Helper()

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body ReadinessResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return rec.Code, body
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		redis      Checker
		wantStatus int
		wantChecks int
	}{
		{"database only", nil, http.StatusOK, 1},
		{"redis healthy", pinger{}, http.StatusOK, 2},
		{"redis down", pinger{errors.New("down")}, http.StatusServiceUnavailable, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(pinger{})
			if tt.redis != nil {
				h.AddChecker("redis", tt.redis)
			}

			code, body := get(t, h, "/readyz")
			if code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", code, tt.wantStatus)
			}
			if len(body.Checks) != tt.wantChecks {
				t.Fatalf("checks = %+v, want %d", body.Checks, tt.wantChecks)
			}
		})
	}
}

func TestShutdownFlipsProbes(t *testing.T) {
	h := NewHandler(pinger{})

	if code, _ := get(t, h, "/livez"); code != http.StatusOK {
		t.Fatalf("livez status = %d, want 200", code)
	}

	h.SetShutdown(true)

	for _, path := range []string{"/healthz", "/readyz"} {
		code, body := get(t, h, path)
		if code != http.StatusServiceUnavailable || body.Status != "shutting_down" {
			t.Errorf("%s = %d %q, want 503 shutting_down", path, code, body.Status)
		}
	}
}
