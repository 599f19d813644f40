// AngelaMos | 2026
// session.go

package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/greensteps/internal/config"
	"github.com/carterperez-dev/greensteps/internal/core"
	"github.com/carterperez-dev/greensteps/internal/middleware"
)

var _ middleware.SessionVerifier = (*SessionManager)(nil)

// SessionManager issues and verifies ES256-signed session tokens. The
// token subject is the user's email.
type SessionManager struct {
	privateKey jwk.Key
	publicKey  jwk.Key
	config     config.SessionConfig
	revoked    Denylist
	now        func() time.Time
	ephemeral  bool
}

type IssuedSession struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// NewSessionManager loads the signing key from cfg.PrivateKeyPath. With
// no path configured a fresh key is generated, so sessions do not
// survive a restart.
func NewSessionManager(
	cfg config.SessionConfig,
	revoked Denylist,
) (*SessionManager, error) {
	var (
		privateKey jwk.Key
		err        error
	)

	if cfg.PrivateKeyPath != "" {
		privateKey, err = loadPrivateKey(cfg.PrivateKeyPath)
	} else {
		privateKey, err = newPrivateKey()
	}
	if err != nil {
		return nil, err
	}

	publicKey, err := privateKey.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}

	if revoked == nil {
		revoked = NewMemoryDenylist()
	}

	return &SessionManager{
		privateKey: privateKey,
		publicKey:  publicKey,
		config:     cfg,
		revoked:    revoked,
		now:        time.Now,
		ephemeral:  cfg.PrivateKeyPath == "",
	}, nil
}

func loadPrivateKey(path string) (jwk.Key, error) {
	privateKeyPEM, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}

	privateKey, err := jwk.ParseKey(privateKeyPEM, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	if err := tagKey(privateKey); err != nil {
		return nil, err
	}
	return privateKey, nil
}

func newPrivateKey() (jwk.Key, error) {
	raw, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	privateKey, err := jwk.Import(raw)
	if err != nil {
		return nil, fmt.Errorf("import private key: %w", err)
	}

	if err := tagKey(privateKey); err != nil {
		return nil, err
	}
	return privateKey, nil
}

func tagKey(key jwk.Key) error {
	if err := key.Set(jwk.AlgorithmKey, jwa.ES256()); err != nil {
		return fmt.Errorf("set algorithm: %w", err)
	}
	if err := key.Set(jwk.KeyIDKey, uuid.New().String()[:8]); err != nil {
		return fmt.Errorf("set key id: %w", err)
	}
	return nil
}

// GenerateKeyPair writes a new PEM-encoded P-256 private key, creating
// the parent directory when needed.
func GenerateKeyPair(privateKeyPath string) error {
	privateKey, err := newPrivateKey()
	if err != nil {
		return err
	}

	privatePEM, err := jwk.Pem(privateKey)
	if err != nil {
		return fmt.Errorf("encode private key: %w", err)
	}

	if dir := filepath.Dir(privateKeyPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create key directory: %w", err)
		}
	}

	if err := os.WriteFile(privateKeyPath, privatePEM, 0o600); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}

	return nil
}

func (m *SessionManager) Ephemeral() bool {
	return m.ephemeral
}

func (m *SessionManager) KeyID() string {
	var kid string
	//nolint:errcheck // key ID always set in tagKey
	_ = m.privateKey.Get(jwk.KeyIDKey, &kid)
	return kid
}

func (m *SessionManager) CookieName() string {
	return m.config.CookieName
}

func (m *SessionManager) Issue(email string) (*IssuedSession, error) {
	now := m.now()
	id := uuid.New().String()
	expiresAt := now.Add(m.config.TTL)

	token, err := jwt.NewBuilder().
		JwtID(id).
		Issuer(m.config.Issuer).
		Subject(email).
		IssuedAt(now).
		NotBefore(now).
		Expiration(expiresAt).
		Claim("type", "session").
		Build()
	if err != nil {
		return nil, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.privateKey))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &IssuedSession{
		Token:     string(signed),
		ID:        id,
		ExpiresAt: expiresAt.Truncate(time.Second),
	}, nil
}

// VerifySession checks signature, issuer, lifetime and revocation.
func (m *SessionManager) VerifySession(
	ctx context.Context,
	tokenString string,
) (*middleware.Session, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.ES256(), m.publicKey),
		jwt.WithValidate(false),
	)
	if err != nil {
		return nil, fmt.Errorf("verify session: %w", core.ErrTokenInvalid)
	}

	if issuer, _ := token.Issuer(); issuer != m.config.Issuer {
		return nil, fmt.Errorf("verify session: wrong issuer: %w", core.ErrTokenInvalid)
	}

	var tokenType string
	if err := token.Get("type", &tokenType); err != nil || tokenType != "session" {
		return nil, fmt.Errorf("verify session: invalid token type: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf("verify session: missing subject: %w", core.ErrTokenInvalid)
	}

	id, ok := token.JwtID()
	if !ok || id == "" {
		return nil, fmt.Errorf("verify session: missing id: %w", core.ErrTokenInvalid)
	}

	expiresAt, ok := token.Expiration()
	if !ok {
		return nil, fmt.Errorf("verify session: missing expiry: %w", core.ErrTokenInvalid)
	}
	if !m.now().Before(expiresAt) {
		return nil, fmt.Errorf("verify session: %w", core.ErrTokenExpired)
	}

	denied, err := m.revoked.IsDenied(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("verify session: check revocation: %w", err)
	}
	if denied {
		return nil, fmt.Errorf("verify session: %w", core.ErrTokenRevoked)
	}

	return &middleware.Session{
		LoggedIn:  true,
		UserEmail: subject,
		ID:        id,
		ExpiresAt: expiresAt,
	}, nil
}

// Revoke denies the session until its natural expiry. Logged-out
// sessions are ignored.
func (m *SessionManager) Revoke(ctx context.Context, sess middleware.Session) error {
	if !sess.LoggedIn || sess.ID == "" {
		return nil
	}
	if err := m.revoked.Deny(ctx, sess.ID, sess.ExpiresAt); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (m *SessionManager) SetCookie(w http.ResponseWriter, issued *IssuedSession) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    issued.Token,
		Path:     "/",
		Expires:  issued.ExpiresAt,
		MaxAge:   int(m.config.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.config.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.config.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
