// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/config"
)

// tokenIssuer identifies tokens minted by this server.
const tokenIssuer = "backendsight"

// resetSubject marks password-reset tokens so they can never be used as
// access tokens and vice versa.
const resetSubject = "password-reset"

// Claims represents JWT claims for an authenticated user.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Plan   string `json:"plan"`
	jwt.RegisteredClaims
}

// JWTManager creates and validates HS256-signed tokens.
//
// Two token families are issued: access tokens carrying user claims, and
// short-lived password-reset tokens carrying only the email. The secret is
// stored as []byte to avoid string interning.
type JWTManager struct {
	secret   []byte
	ttl      time.Duration
	resetTTL time.Duration
}

// NewJWTManager creates a JWT manager from the security configuration.
// Returns an error when the secret is empty; callers decide whether the
// environment permits generating an ephemeral one.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is required but was empty")
	}

	return &JWTManager{
		secret:   []byte(cfg.JWTSecret),
		ttl:      cfg.TokenTTL,
		resetTTL: cfg.ResetTokenTTL,
	}, nil
}

// GenerateToken creates a signed access token for an authenticated user.
func (m *JWTManager) GenerateToken(userID, email, role, plan string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Plan:   plan,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signedToken, nil
}

// ValidateToken validates an access token and extracts the user claims.
// Tokens signed with any method other than HMAC are rejected, as are
// password-reset tokens.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.Subject == resetSubject {
		return nil, fmt.Errorf("reset token cannot be used for authentication")
	}
	return claims, nil
}

// GenerateResetToken creates a short-lived password-reset token for email.
func (m *JWTManager) GenerateResetToken(email string) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   resetSubject,
		Audience:  jwt.ClaimStrings{email},
		ExpiresAt: jwt.NewNumericDate(now.Add(m.resetTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign reset token: %w", err)
	}
	return signedToken, nil
}

// ValidateResetToken validates a password-reset token and returns the email
// it was issued for.
func (m *JWTManager) ValidateResetToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse reset token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid reset token claims")
	}
	if claims.Subject != resetSubject || len(claims.Audience) != 1 {
		return "", fmt.Errorf("token is not a password-reset token")
	}
	return claims.Audience[0], nil
}
