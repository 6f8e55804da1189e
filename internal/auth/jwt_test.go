// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package auth

import (
	"testing"
	"time"

	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/config"
)

func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		JWTSecret:     "test-secret-key-with-enough-entropy-for-hs256",
		TokenTTL:      time.Hour,
		ResetTokenTTL: 15 * time.Minute,
		BcryptCost:    4, // minimum cost keeps tests fast
	}
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	t.Parallel()

	cfg := testSecurityConfig()
	cfg.JWTSecret = ""
	if _, err := NewJWTManager(cfg); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	m, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	token, err := m.GenerateToken("user-1", "alice@example.com", "user", "free")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Plan != "free" {
		t.Errorf("Plan = %q, want free", claims.Plan)
	}
	if claims.Issuer != "backendsight" {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	t.Parallel()

	m, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	token, err := m.GenerateToken("user-1", "alice@example.com", "user", "free")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := m.ValidateToken(token + "x"); err == nil {
		t.Error("tampered token should fail validation")
	}
	if _, err := m.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token should fail validation")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	m1, _ := NewJWTManager(testSecurityConfig())
	other := testSecurityConfig()
	other.JWTSecret = "a-completely-different-secret-value-here"
	m2, _ := NewJWTManager(other)

	token, err := m1.GenerateToken("user-1", "alice@example.com", "user", "free")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m2.ValidateToken(token); err == nil {
		t.Error("token signed with different secret should fail")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	cfg := testSecurityConfig()
	cfg.TokenTTL = -time.Minute
	m, _ := NewJWTManager(cfg)

	token, err := m.GenerateToken("user-1", "alice@example.com", "user", "free")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m.ValidateToken(token); err == nil {
		t.Error("expired token should fail validation")
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	t.Parallel()

	m, _ := NewJWTManager(testSecurityConfig())

	token, err := m.GenerateResetToken("alice@example.com")
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}

	email, err := m.ValidateResetToken(token)
	if err != nil {
		t.Fatalf("ValidateResetToken: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("email = %q", email)
	}
}

func TestResetTokenNotUsableAsAccessToken(t *testing.T) {
	t.Parallel()

	m, _ := NewJWTManager(testSecurityConfig())

	reset, err := m.GenerateResetToken("alice@example.com")
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}
	if _, err := m.ValidateToken(reset); err == nil {
		t.Error("reset token must not authenticate requests")
	}

	access, err := m.GenerateToken("user-1", "alice@example.com", "user", "free")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m.ValidateResetToken(access); err == nil {
		t.Error("access token must not pass reset validation")
	}
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret-password", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("hash must not equal plaintext")
	}
	if !CheckPassword(hash, "s3cret-password") {
		t.Error("correct password should verify")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("wrong password should not verify")
	}
}
