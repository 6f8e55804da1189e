// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

// Package api provides the HTTP surface: routing, middleware, request
// validation, and the uniform response envelope.
package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/logging"
)

// Envelope is the wrapper every endpoint responds with. Data is present only
// on success; Error and Details only on failure.
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// ResponseWriter writes enveloped responses for a single request.
type ResponseWriter struct {
	w http.ResponseWriter
	r *http.Request
}

// NewResponseWriter creates a response writer bound to one request.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{w: w, r: r}
}

// Success writes a 200 response with data.
func (rw *ResponseWriter) Success(data interface{}) {
	rw.writeJSON(http.StatusOK, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: timestamp(),
	})
}

// Created writes a 201 response with data.
func (rw *ResponseWriter) Created(data interface{}) {
	rw.writeJSON(http.StatusCreated, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: timestamp(),
	})
}

// DomainError reports an analysis failure. The transport succeeded, so the
// status stays 200 and failure is carried in the envelope.
func (rw *ResponseWriter) DomainError(message string) {
	rw.writeJSON(http.StatusOK, Envelope{
		Success:   false,
		Error:     message,
		Timestamp: timestamp(),
	})
}

// ValidationFailed writes a 422 response with per-field details.
func (rw *ResponseWriter) ValidationFailed(details interface{}) {
	rw.writeJSON(http.StatusUnprocessableEntity, Envelope{
		Success:   false,
		Error:     "Validation error",
		Details:   details,
		Timestamp: timestamp(),
	})
}

// BadRequest writes a 400 error.
func (rw *ResponseWriter) BadRequest(message string) {
	rw.errorStatus(http.StatusBadRequest, message)
}

// Unauthorized writes a 401 error.
func (rw *ResponseWriter) Unauthorized(message string) {
	rw.errorStatus(http.StatusUnauthorized, message)
}

// Forbidden writes a 403 error.
func (rw *ResponseWriter) Forbidden(message string) {
	rw.errorStatus(http.StatusForbidden, message)
}

// NotFound writes a 404 error.
func (rw *ResponseWriter) NotFound(message string) {
	rw.errorStatus(http.StatusNotFound, message)
}

// Conflict writes a 409 error.
func (rw *ResponseWriter) Conflict(message string) {
	rw.errorStatus(http.StatusConflict, message)
}

// TooManyRequests writes a 429 error.
func (rw *ResponseWriter) TooManyRequests(message string) {
	rw.errorStatus(http.StatusTooManyRequests, message)
}

// InternalError writes a 500 error. The real cause is logged, never exposed.
func (rw *ResponseWriter) InternalError(err error) {
	logging.Ctx(rw.r.Context()).Error().Err(err).
		Str("path", rw.r.URL.Path).
		Msg("Unhandled error")
	rw.errorStatus(http.StatusInternalServerError, "Internal server error")
}

func (rw *ResponseWriter) errorStatus(statusCode int, message string) {
	rw.writeJSON(statusCode, Envelope{
		Success:   false,
		Error:     message,
		Timestamp: timestamp(),
	})
}

func (rw *ResponseWriter) writeJSON(statusCode int, data interface{}) {
	rw.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.w.WriteHeader(statusCode)

	if err := json.NewEncoder(rw.w).Encode(data); err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// WriteSuccess is a convenience function for handlers that do not need the
// full ResponseWriter.
func WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	NewResponseWriter(w, r).Success(data)
}

// WriteTooManyRequests is used by the rate-limit middleware.
func WriteTooManyRequests(w http.ResponseWriter, r *http.Request, message string) {
	NewResponseWriter(w, r).TooManyRequests(message)
}
