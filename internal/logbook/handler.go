// AngelaMos | 2026
// handler.go

package logbook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/greensteps/internal/core"
	"github.com/carterperez-dev/greensteps/internal/middleware"
)

// UserResolver maps a session email to its account id.
type UserResolver interface {
	GetUserID(ctx context.Context, email string) (int64, error)
}

type Handler struct {
	service   *Service
	users     UserResolver
	validator *validator.Validate
}

func NewHandler(service *Service, users UserResolver) *Handler {
	return &Handler{
		service:   service,
		users:     users,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	requireSession func(http.Handler) http.Handler,
) {
	r.Route("/logs", func(r chi.Router) {
		r.Use(requireSession)

		r.Get("/", h.History)
		r.Get("/today", h.GetToday)
		r.Post("/", h.Submit)
	})
}

// ResolveUser returns the session user's id, or false after writing a
// 401 when the account no longer resolves.
func ResolveUser(
	w http.ResponseWriter,
	r *http.Request,
	users UserResolver,
) (int64, bool) {
	sess := middleware.GetSession(r.Context())

	id, err := users.GetUserID(r.Context(), sess.UserEmail)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.Unauthorized(w, "account not found")
			return 0, false
		}
		core.InternalServerError(w, err)
		return 0, false
	}
	return id, true
}

func (h *Handler) GetToday(w http.ResponseWriter, r *http.Request) {
	userID, ok := ResolveUser(w, r, h.users)
	if !ok {
		return
	}

	today := h.service.Today()
	logged, err := h.service.HasLoggedToday(r.Context(), userID, today)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, TodayResponse{Date: today, Logged: logged})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := ResolveUser(w, r, h.users)
	if !ok {
		return
	}

	entries, err := h.service.History(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToEntryResponses(entries))
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := ResolveUser(w, r, h.users)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	entries, err := h.service.SubmitToday(
		r.Context(),
		userID,
		h.service.Today(),
		req.Habits,
		req.Notes,
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyLogged):
			core.JSONError(w, core.ConflictError("already submitted for today"))
		case errors.Is(err, ErrUnknownHabit):
			core.JSONError(w, core.ValidationError(err.Error()))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToEntryResponses(entries))
}
