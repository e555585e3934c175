package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func protectedOK() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := AccountIDFromContext(r.Context()); ok {
			w.Header().Set("X-Account-ID", id)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	cfg := testConfig()
	mw := NewMiddleware(cfg, NewService(cfg))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	mw.RequireAuth(protectedOK()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	cfg := testConfig()
	svc := NewService(cfg)
	mw := NewMiddleware(cfg, svc)

	resp, err := svc.SignInDev("google:7")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	mw.RequireAuth(protectedOK()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Account-ID"); got != "google:7" {
		t.Fatalf("account id in context = %q", got)
	}
}

func TestRequireAuthSkipsPublicPaths(t *testing.T) {
	cfg := testConfig()
	mw := NewMiddleware(cfg, NewService(cfg))

	for _, path := range []string{"/healthz", "/v1/auth/dev"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		mw.RequireAuth(protectedOK()).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("path %s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestRequireAuthDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRequired = false
	mw := NewMiddleware(cfg, NewService(cfg))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	mw.RequireAuth(protectedOK()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestOptionalAuthPassesWithoutToken(t *testing.T) {
	cfg := testConfig()
	mw := NewMiddleware(cfg, NewService(cfg))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/food-logs", nil)
	mw.OptionalAuth(protectedOK()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestOptionalAuthRejectsBadToken(t *testing.T) {
	cfg := testConfig()
	mw := NewMiddleware(cfg, NewService(cfg))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/food-logs", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	mw.OptionalAuth(protectedOK()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
