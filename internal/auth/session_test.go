// AngelaMos | 2026
// session_test.go

package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/carterperez-dev/greensteps/internal/config"
	"github.com/carterperez-dev/greensteps/internal/core"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		TTL:        time.Hour,
		CookieName: "greensteps_session",
		Issuer:     "greensteps",
	}
}

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	m, err := NewSessionManager(testSessionConfig(), NewMemoryDenylist())
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	return m
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager(t)
	if !m.Ephemeral() {
		t.Error("Ephemeral() = false without a key path")
	}

	issued, err := m.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	sess, err := m.VerifySession(context.Background(), issued.Token)
	if err != nil {
		t.Fatalf("VerifySession() error = %v", err)
	}
	if !sess.LoggedIn || sess.UserEmail != "a@x.com" || sess.ID != issued.ID {
		t.Fatalf("VerifySession() = %+v, want logged-in a@x.com", sess)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	m := newTestManager(t)
	other := newTestManager(t)

	foreign, err := other.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	own, err := m.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	parts := strings.Split(own.Token, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	for name, token := range map[string]string{
		"garbage":     "not-a-token",
		"foreign key": foreign.Token,
		"tampered":    tampered,
	} {
		if _, err := m.VerifySession(context.Background(), token); !errors.Is(err, core.ErrTokenInvalid) {
			t.Errorf("%s: VerifySession() error = %v, want ErrTokenInvalid", name, err)
		}
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := newTestManager(t)

	issued, err := m.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, err := m.VerifySession(context.Background(), issued.Token); !errors.Is(err, core.ErrTokenExpired) {
		t.Fatalf("VerifySession() error = %v, want ErrTokenExpired", err)
	}
}

func TestRevoke(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	issued, err := m.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	sess, err := m.VerifySession(ctx, issued.Token)
	if err != nil {
		t.Fatalf("VerifySession() error = %v", err)
	}

	if err := m.Revoke(ctx, *sess); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if _, err := m.VerifySession(ctx, issued.Token); !errors.Is(err, core.ErrTokenRevoked) {
		t.Fatalf("VerifySession() after revoke error = %v, want ErrTokenRevoked", err)
	}
}

func TestKeyFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "session.pem")
	if err := GenerateKeyPair(path); err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}

	cfg := testSessionConfig()
	cfg.PrivateKeyPath = path

	first, err := NewSessionManager(cfg, nil)
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}
	if first.Ephemeral() {
		t.Error("Ephemeral() = true with a key path")
	}
	second, err := NewSessionManager(cfg, nil)
	if err != nil {
		t.Fatalf("NewSessionManager() error = %v", err)
	}

	issued, err := first.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := second.VerifySession(context.Background(), issued.Token); err != nil {
		t.Fatalf("token from same key file rejected: %v", err)
	}
}

func TestCookies(t *testing.T) {
	m := newTestManager(t)

	issued, err := m.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	rec := httptest.NewRecorder()
	m.SetCookie(rec, issued)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "greensteps_session" || cookies[0].Value != issued.Token {
		t.Fatalf("SetCookie() cookies = %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}

	rec = httptest.NewRecorder()
	m.ClearCookie(rec)
	cookies = rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("ClearCookie() cookies = %v, want expired cookie", cookies)
	}
}

func TestMemoryDenylistExpires(t *testing.T) {
	d := NewMemoryDenylist()
	ctx := context.Background()
	base := time.Now()
	d.now = func() time.Time { return base }

	if err := d.Deny(ctx, "s1", base.Add(time.Minute)); err != nil {
		t.Fatalf("Deny() error = %v", err)
	}
	if err := d.Deny(ctx, "past", base.Add(-time.Minute)); err != nil {
		t.Fatalf("Deny() error = %v", err)
	}

	if denied, _ := d.IsDenied(ctx, "s1"); !denied {
		t.Fatal("IsDenied(s1) = false before expiry")
	}
	if denied, _ := d.IsDenied(ctx, "past"); denied {
		t.Fatal("IsDenied(past) = true for an already expired session")
	}

	d.now = func() time.Time { return base.Add(2 * time.Minute) }
	if denied, _ := d.IsDenied(ctx, "s1"); denied {
		t.Fatal("IsDenied(s1) = true after expiry")
	}
}

type fakeSet struct {
	keys map[string]time.Time
}

func (f *fakeSet) Key(parts ...string) string {
	return "test:" + strings.Join(parts, ":")
}

func (f *fakeSet) SetUntil(_ context.Context, key string, until time.Time) error {
	f.keys[key] = until
	return nil
}

func (f *fakeSet) Has(_ context.Context, key string) (bool, error) {
	_, ok := f.keys[key]
	return ok, nil
}

func TestRedisDenylistKeys(t *testing.T) {
	set := &fakeSet{keys: make(map[string]time.Time)}
	d := NewRedisDenylist(set)
	ctx := context.Background()
	until := time.Now().Add(time.Hour)

	if err := d.Deny(ctx, "abc", until); err != nil {
		t.Fatalf("Deny() error = %v", err)
	}
	if got, ok := set.keys["test:revoked:abc"]; !ok || !got.Equal(until) {
		t.Fatalf("stored keys = %v, want test:revoked:abc until %v", set.keys, until)
	}

	if denied, err := d.IsDenied(ctx, "abc"); err != nil || !denied {
		t.Fatalf("IsDenied(abc) = (%v, %v), want (true, nil)", denied, err)
	}
	if denied, err := d.IsDenied(ctx, "other"); err != nil || denied {
		t.Fatalf("IsDenied(other) = (%v, %v), want (false, nil)", denied, err)
	}
}
