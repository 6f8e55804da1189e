// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/engine"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/logging"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/metrics"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/store"
)

// AnalyzeBrand runs the full brand analysis pipeline and persists the result
// against the caller's account.
func (h *Handlers) AnalyzeBrand(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}

	var req AnalyzeBrandRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if !h.checkAnalysisQuota(w, r, claims.UserID, claims.Plan) {
		return
	}

	start := time.Now()
	analysis, err := h.engine.AnalyzeBrand(r.Context(), engine.AnalysisRequest{
		BrandName:         req.BrandName,
		WebsiteURL:        req.WebsiteURL,
		ProductCategories: req.ProductCategories,
		ContentSample:     req.ContentSample,
		CompetitorBrands:  req.CompetitorBrands,
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("brand", req.BrandName).
			Msg("Brand analysis failed")
		rw.DomainError("Analysis failed: " + err.Error())
		return
	}

	elapsed := time.Since(start)
	h.persistAnalysis(r, claims.UserID, &req, analysis, elapsed)

	rw.Success(map[string]interface{}{
		"brand_name":      req.BrandName,
		"analysis_result": analysis,
		"processing_time": elapsed.Seconds(),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// persistAnalysis saves the brand and analysis records. Persistence failures
// are logged but do not fail a completed analysis.
func (h *Handlers) persistAnalysis(r *http.Request, ownerID string, req *AnalyzeBrandRequest, analysis *engine.BrandAnalysis, elapsed time.Duration) {
	ctx := r.Context()
	now := time.Now().UTC()

	brand := &store.Brand{
		ID:              uuid.NewString(),
		Name:            req.BrandName,
		WebsiteURL:      req.WebsiteURL,
		TrackingEnabled: true,
		OwnerID:         ownerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := h.store.UpsertBrand(ctx, brand); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("brand", req.BrandName).Msg("Failed to store brand")
	}

	record := &store.Analysis{
		ID:             uuid.NewString(),
		BrandName:      req.BrandName,
		OwnerID:        ownerID,
		AnalysisType:   "full",
		Status:         "completed",
		Metrics:        analysis.OptimizationMetrics,
		OverallScore:   analysis.PerformanceSummary.OverallScore,
		Grade:          analysis.PerformanceSummary.PerformanceGrade,
		ProcessingTime: elapsed.Seconds(),
		CreatedAt:      now,
	}
	if err := h.store.SaveAnalysis(ctx, record); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("brand", req.BrandName).Msg("Failed to store analysis")
	}
}

// checkAnalysisQuota enforces the per-plan monthly analysis allowance.
func (h *Handlers) checkAnalysisQuota(w http.ResponseWriter, r *http.Request, ownerID, plan string) bool {
	rw := NewResponseWriter(w, r)

	limit, ok := store.PlanAnalysisLimits[plan]
	if !ok {
		limit = store.PlanAnalysisLimits[store.PlanFree]
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	used, err := h.store.CountAnalysesSince(r.Context(), ownerID, monthStart)
	if err != nil {
		rw.InternalError(err)
		return false
	}
	if used >= limit {
		rw.Forbidden("Monthly analysis limit reached for your plan")
		return false
	}
	return true
}

// OptimizationMetrics computes the fast metric set with post-processed
// rankings. Identical repeated requests are served from the result cache.
func (h *Handlers) OptimizationMetrics(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if _, ok := claimsOrFail(w, r); !ok {
		return
	}

	var req OptimizationMetricsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	key := requestCacheKey(&req)
	if cached, ok := h.resultCache.Get(key); ok {
		metrics.AnalysisCacheHits.Inc()
		rw.Success(cached)
		return
	}
	metrics.AnalysisCacheMisses.Inc()

	m, err := h.engine.CalculateMetricsFast(r.Context(), engine.AnalysisRequest{
		BrandName:     req.BrandName,
		WebsiteURL:    req.WebsiteURL,
		ContentSample: req.ContentSample,
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("brand", req.BrandName).
			Msg("Metrics calculation failed")
		rw.DomainError("Metrics calculation failed: " + err.Error())
		return
	}

	metricMap := m.ToMap()
	score := m.OverallScore()
	data := map[string]interface{}{
		"brand_name":        req.BrandName,
		"metrics":           metricMap,
		"overall_score":     score,
		"performance_grade": engine.Grade(score),
		"top_metrics":       topMetrics(metricMap),
		"improvement_areas": improvementAreas(metricMap),
		"score_breakdown":   scoreBreakdown(metricMap),
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
	}

	h.resultCache.Add(key, data)
	rw.Success(data)
}

// AnalyzeQueries generates and classifies the semantic query set for a brand.
func (h *Handlers) AnalyzeQueries(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if _, ok := claimsOrFail(w, r); !ok {
		return
	}

	var req AnalyzeQueriesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	qa, err := h.engine.AnalyzeQueries(r.Context(), req.BrandName, req.ProductCategories)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("brand", req.BrandName).
			Msg("Query analysis failed")
		rw.DomainError("Query analysis failed: " + err.Error())
		return
	}

	rw.Success(qa)
}

// ListBrands lists the caller's tracked brands.
func (h *Handlers) ListBrands(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}

	brands, err := h.store.ListBrands(r.Context(), claims.UserID)
	if err != nil {
		rw.InternalError(err)
		return
	}

	rw.Success(map[string]interface{}{
		"brands":      brands,
		"total_count": len(brands),
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// BrandHistory returns stored analyses for one brand, newest first.
func (h *Handlers) BrandHistory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	claims, ok := claimsOrFail(w, r)
	if !ok {
		return
	}

	brandName := strings.TrimSpace(chi.URLParam(r, "brand_name"))
	if brandName == "" {
		rw.BadRequest("Brand name is required")
		return
	}

	limit := h.cfg.API.DefaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			rw.BadRequest("Invalid limit parameter")
			return
		}
		if parsed > h.cfg.API.MaxPageSize {
			parsed = h.cfg.API.MaxPageSize
		}
		limit = parsed
	}

	analyses, err := h.store.ListAnalyses(r.Context(), claims.UserID, brandName, limit)
	if err != nil {
		rw.InternalError(err)
		return
	}

	rw.Success(map[string]interface{}{
		"brand_name":       brandName,
		"analysis_history": analyses,
		"total_analyses":   len(analyses),
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	})
}
