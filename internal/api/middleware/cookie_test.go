package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSessionCookie_RoundTrip(t *testing.T) {
	cookie, err := NewSessionCookie("sid-123", "secret", time.Hour)
	if err != nil {
		t.Fatalf("sign cookie: %v", err)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	if got := SessionIDFromRequest(req, "secret"); got != "sid-123" {
		t.Fatalf("expected sid-123, got %q", got)
	}
}

func TestSessionIDFromRequest_MissingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := SessionIDFromRequest(req, "secret"); got != "" {
		t.Fatalf("expected empty sid, got %q", got)
	}
}

func TestSessionIDFromRequest_WrongSecret(t *testing.T) {
	cookie, err := NewSessionCookie("sid-123", "secret", time.Hour)
	if err != nil {
		t.Fatalf("sign cookie: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	if got := SessionIDFromRequest(req, "other-secret"); got != "" {
		t.Fatalf("forged cookie must read as anonymous, got %q", got)
	}
}

func TestSessionIDFromRequest_Garbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-jwt"})

	if got := SessionIDFromRequest(req, "secret"); got != "" {
		t.Fatalf("garbage cookie must read as anonymous, got %q", got)
	}
}

func TestClearSessionCookie(t *testing.T) {
	cookie := ClearSessionCookie()
	if cookie.MaxAge != -1 || cookie.Value != "" {
		t.Fatalf("expected deleting cookie, got %+v", cookie)
	}
}
