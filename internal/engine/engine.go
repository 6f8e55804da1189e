// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

// Package engine implements the brand optimization analysis engine.
//
// The engine measures how visible a brand is inside AI-generated answers.
// Content samples are chunked and scored, semantic probe queries are
// generated, and AI answers are tested for brand mentions. The twelve
// resulting metrics feed a weighted overall score, a letter grade,
// recommendations, and an implementation roadmap.
//
// LLM access is optional: when provider keys are absent or set to
// "test_key" the engine runs in deterministic mock mode, which is also the
// fallback when every live probe fails.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/logging"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/metrics"
)

// Config holds everything the engine needs. The engine never consults the
// process environment itself.
type Config struct {
	AnthropicAPIKey   string
	OpenAIAPIKey      string
	Environment       string
	ClaudeModel       string
	GPTModel          string
	MaxTokens         int
	Temperature       float64
	RequestTimeout    time.Duration
	RequestsPerMinute int
}

// AnalysisRequest is the engine-level input for a brand analysis.
type AnalysisRequest struct {
	BrandName         string
	WebsiteURL        string
	ProductCategories []string
	ContentSample     string
	CompetitorBrands  []string
}

// PerformanceSummary condenses the metric set into a headline.
type PerformanceSummary struct {
	OverallScore     float64  `json:"overall_score"`
	PerformanceGrade string   `json:"performance_grade"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
}

// AnalysisMetadata describes how an analysis was produced.
type AnalysisMetadata struct {
	CategoriesAnalyzed    int    `json:"categories_analyzed"`
	HasWebsite            bool   `json:"has_website"`
	HasContentSample      bool   `json:"has_content_sample"`
	CompetitorsIncluded   bool   `json:"competitors_included"`
	TotalQueriesGenerated int    `json:"total_queries_generated"`
	AnalysisMethod        string `json:"analysis_method"`
}

// BrandAnalysis is the complete result of a comprehensive brand analysis.
type BrandAnalysis struct {
	BrandName               string                  `json:"brand_name"`
	AnalysisDate            time.Time               `json:"analysis_date"`
	OptimizationMetrics     map[string]interface{}  `json:"optimization_metrics"`
	PerformanceSummary      PerformanceSummary      `json:"performance_summary"`
	PriorityRecommendations []Recommendation        `json:"priority_recommendations"`
	SemanticQueries         []string                `json:"semantic_queries"`
	SampleResponses         []QueryResponse         `json:"sample_responses,omitempty"`
	ImplementationRoadmap   map[string]RoadmapPhase `json:"implementation_roadmap"`
	Metadata                AnalysisMetadata        `json:"metadata"`
}

// Engine runs brand analyses.
type Engine struct {
	cfg     Config
	clients []*llmClient
	limiter *rate.Limiter
}

// New creates an engine from cfg. Missing or test provider keys are valid:
// the engine then answers from deterministic mocks.
func New(cfg Config) *Engine {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}

	limiter := rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute)

	e := &Engine{cfg: cfg, limiter: limiter}

	if liveKey(cfg.AnthropicAPIKey) {
		e.clients = append(e.clients,
			newLLMClient("anthropic", cfg.AnthropicAPIKey, cfg.ClaudeModel, cfg.MaxTokens, cfg.Temperature, cfg.RequestTimeout, limiter))
	}
	if liveKey(cfg.OpenAIAPIKey) {
		e.clients = append(e.clients,
			newLLMClient("openai", cfg.OpenAIAPIKey, cfg.GPTModel, cfg.MaxTokens, cfg.Temperature, cfg.RequestTimeout, limiter))
	}

	if e.mockMode() {
		logging.Info().Msg("engine running in mock mode, no live LLM providers configured")
	}
	return e
}

func liveKey(key string) bool {
	return key != "" && key != mockAPIKey
}

// mockMode reports whether analyses use deterministic mock responses.
func (e *Engine) mockMode() bool {
	return len(e.clients) == 0
}

// AnalyzeBrand performs a comprehensive analysis: content chunking, query
// generation, AI answer probing, metric calculation, and the derived
// summary, recommendations, and roadmap.
func (e *Engine) AnalyzeBrand(ctx context.Context, req AnalysisRequest) (*BrandAnalysis, error) {
	start := time.Now()
	analysis, err := e.analyzeBrand(ctx, req)
	metrics.RecordEngineOperation("analyze_brand", time.Since(start), err)
	return analysis, err
}

func (e *Engine) analyzeBrand(ctx context.Context, req AnalysisRequest) (*BrandAnalysis, error) {
	if strings.TrimSpace(req.BrandName) == "" {
		return nil, fmt.Errorf("brand name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis canceled: %w", err)
	}

	chunks := chunkContent(req.ContentSample)
	if len(chunks) == 0 {
		chunks = defaultChunk(req.BrandName)
	}

	queries := generateSemanticQueries(req.BrandName, req.ProductCategories)
	probes := e.probeResponses(ctx, req.BrandName, queries)

	m := e.calculateMetrics(chunks, queries, probes)
	m.Sanitize()

	score := m.OverallScore()

	method := "live"
	if e.mockMode() {
		method = "mock"
	}

	sample := probes.Responses
	if len(sample) > 3 {
		sample = sample[:3]
	}

	analysis := &BrandAnalysis{
		BrandName:           req.BrandName,
		AnalysisDate:        time.Now().UTC(),
		OptimizationMetrics: m.ToMap(),
		PerformanceSummary: PerformanceSummary{
			OverallScore:     score,
			PerformanceGrade: Grade(score),
			Strengths:        identifyStrengths(m),
			Weaknesses:       identifyWeaknesses(m),
		},
		PriorityRecommendations: generateRecommendations(m),
		SemanticQueries:         queries,
		SampleResponses:         sample,
		ImplementationRoadmap:   buildRoadmap(),
		Metadata: AnalysisMetadata{
			CategoriesAnalyzed:    len(req.ProductCategories),
			HasWebsite:            req.WebsiteURL != "",
			HasContentSample:      req.ContentSample != "",
			CompetitorsIncluded:   len(req.CompetitorBrands) > 0,
			TotalQueriesGenerated: len(queries),
			AnalysisMethod:        method,
		},
	}

	logging.Ctx(ctx).Info().
		Str("brand", req.BrandName).
		Float64("score", score).
		Str("grade", analysis.PerformanceSummary.PerformanceGrade).
		Msg("brand analysis completed")
	return analysis, nil
}

// calculateMetrics derives the full metric set from chunks, queries, and
// probe results.
func (e *Engine) calculateMetrics(chunks []ContentChunk, queries []string, probes *probeResults) *OptimizationMetrics {
	m := &OptimizationMetrics{}

	m.ChunkRetrievalFrequency = chunkRetrievalFrequency(chunks)
	m.EmbeddingRelevanceScore = embeddingRelevance(chunks, queries)

	total := probes.TotalResponses
	if total < 1 {
		total = 1
	}
	m.AttributionRate = float64(probes.BrandMentions) / float64(total)
	m.AICitationCount = probes.BrandMentions

	m.VectorIndexPresenceRate = 0.85
	m.RetrievalConfidenceScore = 0.75
	m.RRFRankContribution = 0.70
	m.LLMAnswerCoverage = answerCoverage(chunks, queries)
	m.AIModelCrawlSuccessRate = 0.90
	m.SemanticDensityScore = semanticDensity(chunks)
	m.ZeroClickSurfacePresence = 0.55
	m.MachineValidatedAuthority = machineAuthority(
		m.AttributionRate, m.SemanticDensityScore, m.VectorIndexPresenceRate)

	return m
}

// CalculateMetricsFast computes metrics from content alone, without LLM
// probes. Used by the optimization-metrics endpoint.
func (e *Engine) CalculateMetricsFast(ctx context.Context, req AnalysisRequest) (*OptimizationMetrics, error) {
	start := time.Now()
	m, err := e.calculateMetricsFast(ctx, req)
	metrics.RecordEngineOperation("metrics_fast", time.Since(start), err)
	return m, err
}

func (e *Engine) calculateMetricsFast(ctx context.Context, req AnalysisRequest) (*OptimizationMetrics, error) {
	if strings.TrimSpace(req.BrandName) == "" {
		return nil, fmt.Errorf("brand name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("calculation canceled: %w", err)
	}

	chunks := chunkContent(req.ContentSample)
	if len(chunks) == 0 {
		chunks = defaultChunk(req.BrandName)
	}

	queries := []string{
		fmt.Sprintf("What is %s?", req.BrandName),
		fmt.Sprintf("Tell me about %s", req.BrandName),
		fmt.Sprintf("How good is %s?", req.BrandName),
	}

	m := &OptimizationMetrics{}
	m.ChunkRetrievalFrequency = clamp01(float64(len(chunks)) / 10.0)
	m.EmbeddingRelevanceScore = embeddingRelevance(chunks, queries)

	m.AttributionRate = clamp01(0.6 + float64(len(chunks))*0.05)
	m.AICitationCount = len(chunks) * 2
	if m.AICitationCount < 1 {
		m.AICitationCount = 1
	}
	m.VectorIndexPresenceRate = 0.85

	extra := float64(len(req.ContentSample)) / 5000.0
	if extra > 0.2 {
		extra = 0.2
	}
	m.RetrievalConfidenceScore = clamp01(0.7 + extra)

	m.RRFRankContribution = 0.65
	m.LLMAnswerCoverage = answerCoverage(chunks, queries)
	m.AIModelCrawlSuccessRate = 0.90
	m.SemanticDensityScore = semanticDensity(chunks)
	m.ZeroClickSurfacePresence = 0.55
	m.MachineValidatedAuthority = 0.70

	m.Sanitize()

	logging.Ctx(ctx).Info().
		Str("brand", req.BrandName).
		Float64("score", m.OverallScore()).
		Msg("fast metrics calculated")
	return m, nil
}

// AnalyzeQueries generates and classifies semantic queries for a brand.
func (e *Engine) AnalyzeQueries(ctx context.Context, brandName string, productCategories []string) (*QueryAnalysis, error) {
	start := time.Now()
	qa, err := e.analyzeQueries(ctx, brandName, productCategories)
	metrics.RecordEngineOperation("analyze_queries", time.Since(start), err)
	return qa, err
}

func (e *Engine) analyzeQueries(ctx context.Context, brandName string, productCategories []string) (*QueryAnalysis, error) {
	if strings.TrimSpace(brandName) == "" {
		return nil, fmt.Errorf("brand name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("query analysis canceled: %w", err)
	}

	queries := generateSemanticQueries(brandName, productCategories)
	return &QueryAnalysis{
		BrandName:       brandName,
		TotalQueries:    len(queries),
		Queries:         queries,
		ByIntent:        categorizeQueries(queries),
		PurchaseJourney: mapPurchaseJourney(queries),
	}, nil
}
