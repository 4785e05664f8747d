package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_MissingToken(t *testing.T) {
	a := NewAuthenticator("secret")
	handler := a.Middleware(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/advisor/phones", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content-type = %q, want problem+json", ct)
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	a := NewAuthenticator("secret")
	handler := a.Middleware(okHandler())

	token, err := a.IssueToken("tester", jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	r := httptest.NewRequest("GET", "/api/v1/advisor/phones", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestMiddleware_WrongSecret(t *testing.T) {
	other := NewAuthenticator("other-secret")
	token, err := other.IssueToken("tester", nil)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	a := NewAuthenticator("secret")
	handler := a.Middleware(okHandler())

	r := httptest.NewRequest("GET", "/api/v1/advisor/phones", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	a := NewAuthenticator("secret")
	token, err := a.IssueToken("tester", jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	handler := a.Middleware(okHandler())
	r := httptest.NewRequest("GET", "/api/v1/advisor/phones", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
