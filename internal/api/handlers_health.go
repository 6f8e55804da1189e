// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package api

import (
	"fmt"
	"net/http"
	"time"
)

// Health reports overall service health with per-dependency flags. It never
// requires authentication so monitors can always reach it.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	dbHealthy := h.store.Ping(r.Context()) == nil

	// Provider flags report configuration, not live reachability; probing the
	// LLM APIs on every health check would burn quota.
	anthropicConfigured := h.cfg.Engine.AnthropicAPIKey != ""
	openaiConfigured := h.cfg.Engine.OpenAIAPIKey != ""

	status := "healthy"
	if !dbHealthy {
		status = "degraded"
	}

	WriteSuccess(w, r, map[string]interface{}{
		"status": status,
		"services": map[string]bool{
			"database":  dbHealthy,
			"redis":     false,
			"anthropic": anthropicConfigured,
			"openai":    openaiConfigured,
		},
		"response_time": fmt.Sprintf("%.3fms", float64(time.Since(start).Microseconds())/1000.0),
		"version":       Version,
	})
}
