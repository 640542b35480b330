package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bumbolandia/bankd/internal/auth"
)

func TestSessionMiddleware(t *testing.T) {
	registry := auth.NewRegistry("secret")
	token := registry.Issue("1111222233334444")

	var seenCard string
	handler := Session(registry, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCard, _ = CardNumber(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(SessionHeader, token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || seenCard != "1111222233334444" {
		t.Fatalf("code=%d card=%q", rec.Code, seenCard)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(SessionHeader, "bogus")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token: code=%d", rec.Code)
	}
}

func TestAdminMiddleware(t *testing.T) {
	registry := auth.NewRegistry("secret")
	adminToken, err := registry.IssueAdmin("secret")
	if err != nil {
		t.Fatal(err)
	}

	called := false
	handler := Admin(registry, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/accounts", nil)
	req.Header.Set(AdminHeader, adminToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("code=%d called=%v", rec.Code, called)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/accounts", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: code=%d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS([]string{"*"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run for OPTIONS")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/register", nil)
	req.Header.Set("Origin", "https://example.test")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code=%d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("allow-origin=%q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}
