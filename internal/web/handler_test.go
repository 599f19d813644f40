// AngelaMos | 2026
// handler_test.go

package web

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/greensteps/internal/auth"
	"github.com/carterperez-dev/greensteps/internal/config"
	"github.com/carterperez-dev/greensteps/internal/core"
	"github.com/carterperez-dev/greensteps/internal/habit"
	"github.com/carterperez-dev/greensteps/internal/logbook"
	"github.com/carterperez-dev/greensteps/internal/middleware"
	"github.com/carterperez-dev/greensteps/internal/stats"
	"github.com/carterperez-dev/greensteps/internal/testutil"
	"github.com/carterperez-dev/greensteps/internal/user"
)

type testApp struct {
	server *httptest.Server
	client *http.Client
	db     *core.Database
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.NewDatabase(t)
	users := user.NewService(user.NewRepository(db.DB))
	authSvc := auth.NewService(users, core.PlaintextHasher{})

	sessions, err := auth.NewSessionManager(config.SessionConfig{
		TTL:        time.Hour,
		CookieName: "greensteps_session",
		Issuer:     "greensteps",
	}, auth.NewMemoryDenylist())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}

	h, err := NewHandler(Deps{
		Auth:     authSvc,
		Sessions: sessions,
		Logbook:  logbook.NewService(db, habit.Default()),
		Stats:    stats.NewService(stats.NewRepository(db.DB)),
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.LoadSession(sessions))
	h.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}

	return &testApp{server: srv, client: &http.Client{Jar: jar}, db: db}
}

func (a *testApp) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return readBody(t, resp)
}

func (a *testApp) post(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := a.client.PostForm(a.server.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(b)
}

func mustContain(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Errorf("page missing %q", w)
		}
	}
}

func TestBrowserFlow(t *testing.T) {
	app := newTestApp(t)
	creds := url.Values{"email": {"a@example.com"}, "password": {"pw"}}

	_, body := app.get(t, "/")
	mustContain(t, body, "Please login or register to continue.")

	_, body = app.post(t, "/register", creds)
	mustContain(t, body, "Registered successfully! Please login.")

	_, body = app.post(t, "/register", creds)
	mustContain(t, body, "User already exists.")

	_, body = app.post(t, "/login", url.Values{"email": {"a@example.com"}, "password": {"bad"}})
	mustContain(t, body, "Invalid credentials.")

	_, body = app.post(t, "/login", creds)
	mustContain(t, body, "Welcome a@example.com!", "Logged in as", "Submit Today's Log")

	if code, _ := app.get(t, "/charts/personal"); code != http.StatusNoContent {
		t.Fatalf("personal chart before logging = %d, want 204", code)
	}

	_, body = app.post(t, "/log", url.Values{
		"habit": {"Carpooling 🚗", "Skipped Meat 🍃"},
		"notes": {"rode together"},
	})
	mustContain(t, body, "Thanks for logging your green actions! 🌎", "3.5", "Days Contributed")
	if strings.Contains(body, "Submit Today's Log") {
		t.Error("form still shown after submitting")
	}

	_, body = app.get(t, "/")
	mustContain(t, body, "You've already submitted for today. Come back tomorrow!")

	_, body = app.post(t, "/log", url.Values{"habit": {"Reused Container ♻️"}})
	if strings.Count(body, "already submitted for today") != 1 {
		t.Error("already-submitted notice should appear exactly once")
	}
	if n := testutil.CountRows(t, app.db, `SELECT COUNT(*) FROM logs`); n != 2 {
		t.Fatalf("log rows = %d, want 2", n)
	}

	code, body := app.get(t, "/charts/personal")
	if code != http.StatusOK {
		t.Fatalf("personal chart = %d, want 200", code)
	}
	mustContain(t, body, "Daily Eco-Points")

	code, body = app.get(t, "/charts/global")
	if code != http.StatusOK {
		t.Fatalf("global chart = %d, want 200", code)
	}
	mustContain(t, body, "Global Eco-Points Trend")

	_, body = app.post(t, "/logout", nil)
	mustContain(t, body, "Please login or register to continue.")

	if code, _ := app.get(t, "/charts/global"); code != http.StatusUnauthorized {
		t.Fatalf("global chart after logout = %d, want 401", code)
	}
}

func TestSubmitRequiresHabit(t *testing.T) {
	app := newTestApp(t)
	creds := url.Values{"email": {"b@example.com"}, "password": {"pw"}}
	app.post(t, "/register", creds)
	app.post(t, "/login", creds)

	_, body := app.post(t, "/log", url.Values{"notes": {"nothing"}})
	mustContain(t, body, "Select at least one habit.")

	if n := testutil.CountRows(t, app.db, `SELECT COUNT(*) FROM logs`); n != 0 {
		t.Fatalf("log rows = %d, want 0", n)
	}
}

func TestSubmitWhileLoggedOut(t *testing.T) {
	app := newTestApp(t)

	_, body := app.post(t, "/log", url.Values{"habit": {"Carpooling 🚗"}})
	mustContain(t, body, "Please login or register to continue.")

	if n := testutil.CountRows(t, app.db, `SELECT COUNT(*) FROM logs`); n != 0 {
		t.Fatalf("log rows = %d, want 0", n)
	}
}

func TestRegisterModeSelector(t *testing.T) {
	app := newTestApp(t)

	_, body := app.get(t, "/?mode=register")
	mustContain(t, body, "Create Account", `action="/register"`)
}
