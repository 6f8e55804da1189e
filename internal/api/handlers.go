// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/auth"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/cache"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/config"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/engine"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/store"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/validation"
)

// Version is the API version reported by the root and health endpoints.
const Version = "2.0.0"

// maxRequestBody caps request bodies well above the largest valid payload
// (a 50KB content sample plus envelope fields).
const maxRequestBody = 1 << 20

// Handlers holds the dependencies shared by all HTTP handlers.
type Handlers struct {
	cfg         *config.Config
	store       *store.Store
	engine      *engine.Engine
	jwt         *auth.JWTManager
	resultCache *cache.LRUCache
	startTime   time.Time
}

// NewHandlers creates the handler set.
func NewHandlers(cfg *config.Config, st *store.Store, eng *engine.Engine, jwt *auth.JWTManager) *Handlers {
	return &Handlers{
		cfg:         cfg,
		store:       st,
		engine:      eng,
		jwt:         jwt,
		resultCache: cache.NewLRUCache(1000, 5*time.Minute),
		startTime:   time.Now(),
	}
}

// normalizer is implemented by request types that trim their fields before
// validation.
type normalizer interface {
	Normalize()
}

// decodeAndValidate decodes the JSON body into dst, normalizes it, and runs
// struct validation. On failure it writes the error response and returns
// false; the handler should return immediately.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	rw := NewResponseWriter(w, r)

	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if err == io.EOF {
			rw.BadRequest("Request body is required")
		} else {
			rw.BadRequest("Invalid JSON body")
		}
		return false
	}

	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		rw.ValidationFailed(verr.Details())
		return false
	}
	return true
}

// claimsOrFail fetches the authenticated claims injected by the auth
// middleware. A miss means the middleware was not applied to the route.
func claimsOrFail(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		NewResponseWriter(w, r).Unauthorized("Authentication required")
		return nil, false
	}
	return claims, true
}

// Root serves the service index.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"name":    "BackendSight API",
		"version": Version,
		"endpoints": map[string]string{
			"health":               "/health",
			"metrics":              "/metrics",
			"register":             "/api/v2/auth/register",
			"login":                "/api/v2/auth/login",
			"analyze_brand":        "/api/v2/analyze-brand",
			"optimization_metrics": "/api/v2/optimization-metrics",
			"analyze_queries":      "/api/v2/analyze-queries",
			"brands":               "/api/v2/brands",
			"brand_history":        "/api/v2/brands/{brand_name}/history",
		},
	})
}

// requestCacheKey builds a stable cache key for a metrics request.
func requestCacheKey(req *OptimizationMetricsRequest) string {
	return fmt.Sprintf("metrics:%s:%s:%d", req.BrandName, req.WebsiteURL, hashString(req.ContentSample))
}

// hashString is FNV-1a, enough to key the result cache.
func hashString(s string) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	var h uint64 = offset
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}
