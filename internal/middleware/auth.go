// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/carterperez-dev/greensteps/internal/core"
)

const (
	SessionKey      contextKey = "session"
	SessionErrorKey contextKey = "session_error"
)

// Session is the per-request login state. The zero value means logged out.
type Session struct {
	LoggedIn  bool
	UserEmail string
	ID        string
	ExpiresAt time.Time
}

type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*Session, error)
	CookieName() string
}

// LoadSession attaches the caller's session to the request context. A
// missing, expired or revoked token leaves the request logged out.
func LoadSession(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r, verifier.CookieName())
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := verifier.VerifySession(r.Context(), token)
			if err != nil {
				if !isTokenError(err) {
					GetLogger(r.Context()).Warn("session lookup failed", "error", err)
				}
				ctx := context.WithValue(r.Context(), SessionErrorKey, err)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, *sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests that LoadSession left logged out,
// saying why when a token was presented.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetSession(r.Context()).LoggedIn {
			next.ServeHTTP(w, r)
			return
		}

		if err, ok := r.Context().Value(SessionErrorKey).(error); ok {
			handleAuthError(w, err)
			return
		}
		core.JSONError(w, core.UnauthorizedError("login required"))
	})
}

// ExtractToken prefers a bearer Authorization header over the session
// cookie.
func ExtractToken(r *http.Request, cookieName string) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if cookieName == "" {
		return ""
	}
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenRevoked):
		core.JSONError(w, core.TokenRevokedError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func isTokenError(err error) bool {
	return errors.Is(err, core.ErrTokenExpired) ||
		errors.Is(err, core.ErrTokenInvalid) ||
		errors.Is(err, core.ErrTokenRevoked)
}

func GetSession(ctx context.Context) Session {
	if sess, ok := ctx.Value(SessionKey).(Session); ok {
		return sess
	}
	return Session{}
}

// WithSession is used by handlers and tests that build a context by hand.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}
