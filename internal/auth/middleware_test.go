// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

func newTestMiddleware(t *testing.T) (*Middleware, *JWTManager) {
	t.Helper()
	m, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	return NewMiddleware(m, false), m
}

func TestAuthenticateMissingToken(t *testing.T) {
	t.Parallel()

	mw, _ := newTestMiddleware(t)
	handler := mw.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a token")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v2/brands", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["success"] != false {
		t.Error("success should be false")
	}
	if _, ok := body["error"].(string); !ok {
		t.Error("error message missing")
	}
	if _, ok := body["timestamp"].(string); !ok {
		t.Error("timestamp missing")
	}
}

func TestAuthenticateBearerToken(t *testing.T) {
	t.Parallel()

	mw, jm := newTestMiddleware(t)
	token, err := jm.GenerateToken("user-1", "alice@example.com", "user", "free")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var gotClaims *Claims
	handler := mw.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v2/brands", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotClaims == nil || gotClaims.Email != "alice@example.com" {
		t.Errorf("claims = %+v", gotClaims)
	}
}

func TestAuthenticateCookieFallback(t *testing.T) {
	t.Parallel()

	mw, jm := newTestMiddleware(t)
	token, err := jm.GenerateToken("user-1", "alice@example.com", "user", "free")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	handler := mw.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v2/brands", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAuthenticateInvalidScheme(t *testing.T) {
	t.Parallel()

	mw, _ := newTestMiddleware(t)
	handler := mw.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v2/brands", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	mw, jm := newTestMiddleware(t)

	tests := []struct {
		name     string
		role     string
		required string
		want     int
	}{
		{"matching role", "user", "user", http.StatusOK},
		{"admin passes any check", "admin", "user", http.StatusOK},
		{"wrong role", "user", "admin", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			token, err := jm.GenerateToken("user-1", "alice@example.com", tt.role, "free")
			if err != nil {
				t.Fatalf("GenerateToken: %v", err)
			}

			handler := mw.RequireRole(tt.required, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v2/brands", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestAuthenticateDisabled(t *testing.T) {
	t.Parallel()

	jm, _ := NewJWTManager(testSecurityConfig())
	mw := NewMiddleware(jm, true)

	handler := mw.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v2/brands", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 when auth disabled", rec.Code)
	}
}
