// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/auth"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/logging"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/store"
)

// userPayload is the user shape returned by auth endpoints. The password
// hash never leaves the store layer.
type userPayload struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Company  string `json:"company,omitempty"`
	Role     string `json:"role"`
	Plan     string `json:"plan"`
}

func toUserPayload(u *store.User) userPayload {
	return userPayload{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Company:  u.Company,
		Role:     u.Role,
		Plan:     u.Plan,
	}
}

// Register creates a new account on the free plan and returns an access
// token.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.Security.BcryptCost)
	if err != nil {
		rw.InternalError(err)
		return
	}

	now := time.Now().UTC()
	user := &store.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Company:      req.Company,
		Role:         "user",
		Plan:         store.PlanFree,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			rw.Conflict("Email already registered")
			return
		}
		rw.InternalError(err)
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Email, user.Role, user.Plan)
	if err != nil {
		rw.InternalError(err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("User registered")
	rw.Created(map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"user":         toUserPayload(user),
	})
}

// Login verifies credentials and returns an access token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.store.GetUser(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.Unauthorized("Invalid email or password")
			return
		}
		rw.InternalError(err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		logging.Ctx(r.Context()).Warn().Str("email", req.Email).Msg("Failed login attempt")
		rw.Unauthorized("Invalid email or password")
		return
	}
	if !user.IsActive {
		rw.Forbidden("Account is disabled")
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Email, user.Role, user.Plan)
	if err != nil {
		rw.InternalError(err)
		return
	}

	rw.Success(map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"user":         toUserPayload(user),
	})
}

// PasswordReset issues a short-lived reset token. The response does not
// reveal whether the account exists. There is no mail transport: the token
// is returned directly in the test environment and logged otherwise.
func (h *Handlers) PasswordReset(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req PasswordResetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	data := map[string]interface{}{
		"message": "If the account exists, a reset token has been issued",
	}

	if _, err := h.store.GetUser(r.Context(), req.Email); err == nil {
		token, terr := h.jwt.GenerateResetToken(req.Email)
		if terr != nil {
			rw.InternalError(terr)
			return
		}
		if h.cfg.IsTestEnvironment() {
			data["reset_token"] = token
		} else {
			logging.Ctx(r.Context()).Info().
				Str("email", req.Email).
				Str("reset_token", token).
				Msg("Password reset token issued")
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		rw.InternalError(err)
		return
	}

	rw.Success(data)
}

// PasswordResetConfirm validates a reset token and sets the new password.
func (h *Handlers) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req PasswordResetConfirmRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	email, err := h.jwt.ValidateResetToken(req.Token)
	if err != nil {
		rw.BadRequest("Invalid or expired reset token")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword, h.cfg.Security.BcryptCost)
	if err != nil {
		rw.InternalError(err)
		return
	}

	if err := h.store.UpdateUserPassword(r.Context(), email, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.BadRequest("Invalid or expired reset token")
			return
		}
		rw.InternalError(err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("email", email).Msg("Password reset completed")
	rw.Success(map[string]interface{}{"message": "Password updated"})
}
