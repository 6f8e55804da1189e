// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

// Package auth provides JWT-based authentication for the BackendSight API:
// token creation and validation, bcrypt password hashing, and the
// Authenticate middleware that guards analysis endpoints.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/logging"
)

type contextKey string

// ClaimsContextKey is the request context key holding *Claims after
// successful authentication.
const ClaimsContextKey contextKey = "claims"

// Middleware provides authentication middleware around HTTP handlers.
type Middleware struct {
	jwtManager *JWTManager
	disabled   bool
}

// NewMiddleware creates authentication middleware. When disabled is true
// every request passes through without claims; only tests use that mode.
func NewMiddleware(jwtManager *JWTManager, disabled bool) *Middleware {
	return &Middleware{
		jwtManager: jwtManager,
		disabled:   disabled,
	}
}

// Authenticate enforces a valid access token on next. The token is read
// from the Authorization header (Bearer scheme) or a "token" cookie.
// Failures produce a 401 in the standard response envelope.
func (m *Middleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next(w, r)
			return
		}

		token, err := m.extractToken(r)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("token validation failed")
			writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// RequireRole enforces authentication plus a specific role. Users with the
// admin role pass any role check.
func (m *Middleware) RequireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusForbidden, "Insufficient permissions")
			return
		}
		if claims.Role != role && claims.Role != "admin" {
			writeAuthError(w, http.StatusForbidden, "Insufficient permissions")
			return
		}
		next(w, r)
	})
}

// ClaimsFromContext retrieves the authenticated user's claims from ctx.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok
}

// extractToken pulls the access token from the Authorization header or a
// cookie fallback.
func (m *Middleware) extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie("token")
		if err != nil {
			return "", fmt.Errorf("Authentication required")
		}
		return cookie.Value, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("Invalid authorization header")
	}
	return parts[1], nil
}

// writeAuthError writes an authentication failure in the standard response
// envelope. The shape is duplicated here to keep auth free of an api import.
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	body := map[string]interface{}{
		"success":   false,
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("failed to encode auth error response")
	}
}
