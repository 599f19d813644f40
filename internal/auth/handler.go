// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/greensteps/internal/core"
	"github.com/carterperez-dev/greensteps/internal/middleware"
)

type Handler struct {
	service   *Service
	sessions  *SessionManager
	validator *validator.Validate
}

func NewHandler(service *Service, sessions *SessionManager) *Handler {
	return &Handler{
		service:   service,
		sessions:  sessions,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			core.JSONError(w, core.DuplicateError("email"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, toUserResponse(user))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(w, core.UnauthorizedError("invalid credentials"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	issued, err := h.sessions.Issue(user.Email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	h.sessions.SetCookie(w, issued)

	core.OK(w, LoginResponse{
		User: toUserResponse(user),
		Session: SessionResponse{
			Token:     issued.Token,
			TokenType: "Bearer",
			ExpiresAt: issued.ExpiresAt,
		},
	})
}

// Logout revokes the caller's session if there is one. It always clears
// the cookie and succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Revoke(r.Context(), middleware.GetSession(r.Context())); err != nil {
		core.InternalServerError(w, err)
		return
	}

	h.sessions.ClearCookie(w)
	core.NoContent(w)
}
