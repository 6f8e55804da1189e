// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecoveryWritesEnvelope(t *testing.T) {
	t.Parallel()

	handler := Recovery()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Error("success should be false")
	}
	if env.Error != "Internal server error" {
		t.Errorf("error = %q, want generic message with no panic detail", env.Error)
	}
	if env.Timestamp == "" {
		t.Error("timestamp missing")
	}
}

func TestRecoveryPassesThrough(t *testing.T) {
	t.Parallel()

	handler := Recovery()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
