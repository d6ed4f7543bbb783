package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSessionUserLiftsHeader(t *testing.T) {
	t.Parallel()

	var seen string
	handler := SessionUser(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionUserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Session-User", "  user-1  ")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "user-1" {
		t.Fatalf("expected trimmed session user, got %q", seen)
	}
}

func TestSessionUserAbsentStaysAnonymous(t *testing.T) {
	t.Parallel()

	var seen string
	handler := SessionUser(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionUserFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if seen != "" {
		t.Fatalf("expected empty session user, got %q", seen)
	}
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	t.Parallel()

	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected a generated request id")
	}
}

func TestRequestIDEchoesProvided(t *testing.T) {
	t.Parallel()

	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
}
