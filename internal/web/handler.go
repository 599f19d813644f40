// AngelaMos | 2026
// handler.go

package web

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/greensteps/internal/auth"
	"github.com/carterperez-dev/greensteps/internal/core"
	"github.com/carterperez-dev/greensteps/internal/logbook"
	"github.com/carterperez-dev/greensteps/internal/middleware"
	"github.com/carterperez-dev/greensteps/internal/stats"
)

const (
	modeLogin    = "login"
	modeRegister = "register"
	indexPage    = "index.html"
)

type Deps struct {
	Auth     *auth.Service
	Sessions *auth.SessionManager
	Logbook  *logbook.Service
	Stats    *stats.Service
}

// Handler serves the browser pages. Every POST answers with a redirect
// back to the page carrying a notice code.
type Handler struct {
	auth      *auth.Service
	sessions  *auth.SessionManager
	logbook   *logbook.Service
	stats     *stats.Service
	validator *validator.Validate
	pages     *template.Template
}

func NewHandler(deps Deps) (*Handler, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Handler{
		auth:      deps.Auth,
		sessions:  deps.Sessions,
		logbook:   deps.Logbook,
		stats:     deps.Stats,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		pages:     pages,
	}, nil
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Post("/log", h.SubmitLog)
	r.Get("/charts/personal", h.PersonalChart)
	r.Get("/charts/global", h.GlobalChart)
}

func redirect(w http.ResponseWriter, r *http.Request, mode, notice string) {
	q := url.Values{}
	if mode != "" {
		q.Set("mode", mode)
	}
	if notice != "" {
		q.Set("notice", notice)
	}

	target := "/"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	middleware.GetLogger(r.Context()).Error("web request failed", "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// currentUser resolves the session to an account id. A session whose
// account no longer exists is cleared and treated as logged out.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (middleware.Session, int64, bool, error) {
	sess := middleware.GetSession(r.Context())
	if !sess.LoggedIn {
		return sess, 0, false, nil
	}

	id, err := h.auth.GetUserID(r.Context(), sess.UserEmail)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			h.sessions.ClearCookie(w)
			return middleware.Session{}, 0, false, nil
		}
		return sess, 0, false, err
	}

	return sess, id, true, nil
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	sess, userID, ok, err := h.currentUser(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode != modeRegister {
		mode = modeLogin
	}

	data := pageData{Mode: mode}
	if n := lookupNotice(r.URL.Query().Get("notice"), sess.UserEmail); n != nil {
		if n.Side {
			data.SideNotice = n
		} else {
			data.Notice = n
		}
	}

	if !ok {
		h.render(w, r, indexPage, data)
		return
	}

	ctx := r.Context()
	data.LoggedIn = true
	data.Email = sess.UserEmail
	data.Today = h.logbook.Today()
	data.Habits = h.logbook.Catalog().Habits()

	data.AlreadyLogged, err = h.logbook.HasLoggedToday(ctx, userID, data.Today)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if data.AlreadyLogged && data.Notice != nil && r.URL.Query().Get("notice") == noticeAlready {
		data.Notice = nil
	}

	summary, err := h.stats.Summary(ctx, userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(summary.DailyTotals) > 0 {
		data.HasStats = true
		data.TotalPoints = summary.TotalPoints
		data.DaysLogged = summary.DaysLogged
		for _, b := range summary.Badges {
			data.Badges = append(data.Badges, b.Title())
		}
	}

	global, err := h.stats.GlobalDailyTotals(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data.HasGlobal = len(global) > 0

	h.render(w, r, indexPage, data)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req := auth.RegisterRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := h.validator.Struct(req); err != nil {
		redirect(w, r, modeRegister, noticeInvalidInput)
		return
	}

	if _, err := h.auth.Register(r.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			redirect(w, r, modeRegister, noticeUserExists)
			return
		}
		h.fail(w, r, err)
		return
	}

	redirect(w, r, modeLogin, noticeRegistered)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req := auth.LoginRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := h.validator.Struct(req); err != nil {
		redirect(w, r, modeLogin, noticeInvalidInput)
		return
	}

	user, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			redirect(w, r, modeLogin, noticeInvalidCreds)
			return
		}
		h.fail(w, r, err)
		return
	}

	issued, err := h.sessions.Issue(user.Email)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.sessions.SetCookie(w, issued)

	redirect(w, r, "", noticeWelcome)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Revoke(r.Context(), middleware.GetSession(r.Context())); err != nil {
		h.fail(w, r, err)
		return
	}
	h.sessions.ClearCookie(w)

	redirect(w, r, modeLogin, noticeLoggedOut)
}

func (h *Handler) SubmitLog(w http.ResponseWriter, r *http.Request) {
	_, userID, ok, err := h.currentUser(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		redirect(w, r, modeLogin, "")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	labels := r.PostForm["habit"]
	if len(labels) == 0 {
		redirect(w, r, "", noticeNoHabits)
		return
	}

	_, err = h.logbook.SubmitToday(r.Context(), userID, h.logbook.Today(), labels, r.PostFormValue("notes"))
	switch {
	case err == nil:
		redirect(w, r, "", noticeLogged)
	case errors.Is(err, logbook.ErrAlreadyLogged):
		redirect(w, r, "", noticeAlready)
	case errors.Is(err, logbook.ErrUnknownHabit):
		http.Error(w, "Unknown habit", http.StatusBadRequest)
	default:
		h.fail(w, r, err)
	}
}

// PersonalChart answers 204 when the user has no entries.
func (h *Handler) PersonalChart(w http.ResponseWriter, r *http.Request) {
	_, userID, ok, err := h.currentUser(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	totals, err := h.stats.DailyTotals(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeChart(w, r, totals, renderPersonalChart)
}

func (h *Handler) GlobalChart(w http.ResponseWriter, r *http.Request) {
	if !middleware.GetSession(r.Context()).LoggedIn {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	totals, err := h.stats.GlobalDailyTotals(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeChart(w, r, totals, renderGlobalChart)
}
