// AngelaMos | 2026
// handler_test.go

package user

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/greensteps/internal/middleware"
	"github.com/carterperez-dev/greensteps/internal/testutil"
)

func TestGetMe(t *testing.T) {
	db := testutil.NewDatabase(t)
	svc := NewService(NewRepository(db.DB))
	if _, err := svc.Create(t.Context(), "me@x.com", "secret"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name     string
		sess     middleware.Session
		wantCode int
	}{
		{"logged in", middleware.Session{LoggedIn: true, UserEmail: "me@x.com"}, http.StatusOK},
		{"logged out", middleware.Session{}, http.StatusUnauthorized},
		{"deleted account", middleware.Session{LoggedIn: true, UserEmail: "gone@x.com"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewHandler(svc).RegisterRoutes(r, middleware.RequireSession)

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			req = req.WithContext(middleware.WithSession(req.Context(), tt.sess))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusOK {
				body := rec.Body.String()
				if !strings.Contains(body, `"email":"me@x.com"`) || strings.Contains(body, "secret") {
					t.Fatalf("body = %s", body)
				}
			}
		})
	}
}
