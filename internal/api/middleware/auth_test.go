package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apiContext "invitr/internal/api/context"
	"invitr/internal/platform/auth"
	"invitr/internal/platform/config"
)

func newTestAuthMiddleware() (*AuthMiddleware, *auth.TokenService) {
	tokenSvc := auth.NewTokenService(config.JWTConfig{
		Secret:         "test-secret-key",
		AccessTokenTTL: time.Hour,
	})
	return NewAuthMiddleware(tokenSvc), tokenSvc
}

func TestAuthMiddleware(t *testing.T) {
	mid, tokenSvc := newTestAuthMiddleware()

	var gotClaims *auth.Claims
	handler := mid.Handle(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = r.Context().Value(apiContext.Claims).(*auth.Claims)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token passes with claims", func(t *testing.T) {
		token, err := tokenSvc.GenerateAccessToken("adm_1", "admin@wedding.com")
		if err != nil {
			t.Fatalf("GenerateAccessToken failed: %v", err)
		}

		req := httptest.NewRequest("GET", "/api/admin/profiles", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rec.Code)
		}
		if gotClaims == nil || gotClaims.AdminID != "adm_1" {
			t.Errorf("Claims not injected: %+v", gotClaims)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/profiles", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/profiles", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rec.Code)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/profiles", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rec.Code)
		}
	})
}
