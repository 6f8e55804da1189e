// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package engine

import (
	"context"
	"strings"
	"testing"
	"time"
)

func newMockEngine() *Engine {
	return New(Config{
		AnthropicAPIKey: "test_key",
		OpenAIAPIKey:    "test_key",
		Environment:     "test",
		ClaudeModel:     "claude-3-sonnet-20240229",
		GPTModel:        "gpt-4",
		MaxTokens:       1000,
		RequestTimeout:  5 * time.Second,
	})
}

const sampleContent = `Acme builds developer tools for cloud infrastructure teams.
Our flagship product automates deployment pipelines: build, test, release.

Customers choose Acme for reliability and support. The platform handles
thousands of deployments daily with detailed audit logs, role based access
control, and integrations for every major cloud provider on the market today.`

func TestNewEngineMockMode(t *testing.T) {
	t.Parallel()

	if e := newMockEngine(); !e.mockMode() {
		t.Error("test_key should select mock mode")
	}
	if e := New(Config{}); !e.mockMode() {
		t.Error("empty keys should select mock mode")
	}
	live := New(Config{AnthropicAPIKey: "sk-ant-real", Temperature: 0.7, RequestTimeout: time.Second})
	if live.mockMode() {
		t.Error("real key should disable mock mode")
	}
	if len(live.clients) != 1 {
		t.Errorf("expected 1 live client, got %d", len(live.clients))
	}
	if live.clients[0].temperature != 0.7 {
		t.Errorf("client temperature = %v, want 0.7", live.clients[0].temperature)
	}
}

func TestAnalyzeBrand(t *testing.T) {
	t.Parallel()
	e := newMockEngine()

	analysis, err := e.AnalyzeBrand(context.Background(), AnalysisRequest{
		BrandName:         "Acme",
		WebsiteURL:        "https://acme.example.com",
		ProductCategories: []string{"devtools", "automation"},
		ContentSample:     sampleContent,
	})
	if err != nil {
		t.Fatalf("AnalyzeBrand: %v", err)
	}

	if analysis.BrandName != "Acme" {
		t.Errorf("BrandName = %q", analysis.BrandName)
	}
	if len(analysis.OptimizationMetrics) != 12 {
		t.Errorf("expected 12 metrics, got %d", len(analysis.OptimizationMetrics))
	}
	score := analysis.PerformanceSummary.OverallScore
	if score < 0 || score > 1 {
		t.Errorf("overall score %f out of range", score)
	}
	if analysis.PerformanceSummary.PerformanceGrade == "" {
		t.Error("grade missing")
	}
	if len(analysis.PerformanceSummary.Strengths) == 0 {
		t.Error("strengths should never be empty")
	}
	if len(analysis.PerformanceSummary.Weaknesses) == 0 {
		t.Error("weaknesses should never be empty")
	}
	if len(analysis.SemanticQueries) == 0 || len(analysis.SemanticQueries) > 50 {
		t.Errorf("query count = %d", len(analysis.SemanticQueries))
	}
	if len(analysis.ImplementationRoadmap) != 3 {
		t.Errorf("roadmap phases = %d, want 3", len(analysis.ImplementationRoadmap))
	}
	if analysis.Metadata.AnalysisMethod != "mock" {
		t.Errorf("analysis method = %q", analysis.Metadata.AnalysisMethod)
	}
	if !analysis.Metadata.HasWebsite || !analysis.Metadata.HasContentSample {
		t.Error("metadata flags wrong")
	}
	if analysis.Metadata.CategoriesAnalyzed != 2 {
		t.Errorf("categories analyzed = %d", analysis.Metadata.CategoriesAnalyzed)
	}
}

func TestAnalyzeBrandRequiresName(t *testing.T) {
	t.Parallel()
	e := newMockEngine()

	if _, err := e.AnalyzeBrand(context.Background(), AnalysisRequest{BrandName: "  "}); err == nil {
		t.Error("blank brand name should error")
	}
}

func TestAnalyzeBrandCanceledContext(t *testing.T) {
	t.Parallel()
	e := newMockEngine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.AnalyzeBrand(ctx, AnalysisRequest{BrandName: "Acme"}); err == nil {
		t.Error("canceled context should error")
	}
}

func TestAnalyzeBrandWithoutContent(t *testing.T) {
	t.Parallel()
	e := newMockEngine()

	analysis, err := e.AnalyzeBrand(context.Background(), AnalysisRequest{BrandName: "Acme"})
	if err != nil {
		t.Fatalf("AnalyzeBrand: %v", err)
	}
	if analysis.Metadata.HasContentSample {
		t.Error("HasContentSample should be false")
	}
	// The default chunk keeps every metric defined.
	for name, value := range analysis.OptimizationMetrics {
		if f, ok := value.(float64); ok && (f < 0 || f > 1) {
			t.Errorf("metric %s = %f out of range", name, f)
		}
	}
}

func TestCalculateMetricsFast(t *testing.T) {
	t.Parallel()
	e := newMockEngine()

	m, err := e.CalculateMetricsFast(context.Background(), AnalysisRequest{
		BrandName:     "Acme",
		ContentSample: sampleContent,
	})
	if err != nil {
		t.Fatalf("CalculateMetricsFast: %v", err)
	}

	if m.AICitationCount < 1 {
		t.Errorf("citation count = %d, want >= 1", m.AICitationCount)
	}
	if m.ChunkRetrievalFrequency <= 0 {
		t.Error("chunk retrieval frequency should be positive with content")
	}
	score := m.OverallScore()
	if score <= 0 || score > 1 {
		t.Errorf("overall score %f out of range", score)
	}

	if _, err := e.CalculateMetricsFast(context.Background(), AnalysisRequest{}); err == nil {
		t.Error("blank brand name should error")
	}
}

func TestAnalyzeQueries(t *testing.T) {
	t.Parallel()
	e := newMockEngine()

	qa, err := e.AnalyzeQueries(context.Background(), "Acme", []string{"devtools"})
	if err != nil {
		t.Fatalf("AnalyzeQueries: %v", err)
	}

	if qa.TotalQueries != len(qa.Queries) {
		t.Errorf("TotalQueries = %d, len = %d", qa.TotalQueries, len(qa.Queries))
	}
	if qa.TotalQueries == 0 || qa.TotalQueries > 50 {
		t.Errorf("TotalQueries = %d", qa.TotalQueries)
	}

	// Every query must land in exactly one intent bucket and one journey stage.
	intentTotal := 0
	for _, bucket := range qa.ByIntent {
		intentTotal += len(bucket)
	}
	if intentTotal != qa.TotalQueries {
		t.Errorf("intent buckets hold %d queries, want %d", intentTotal, qa.TotalQueries)
	}
	journeyTotal := 0
	for _, stage := range qa.PurchaseJourney {
		journeyTotal += len(stage)
	}
	if journeyTotal != qa.TotalQueries {
		t.Errorf("journey stages hold %d queries, want %d", journeyTotal, qa.TotalQueries)
	}

	for _, q := range qa.Queries {
		if !strings.Contains(q, "Acme") {
			t.Errorf("query %q does not reference the brand", q)
		}
	}
}

func TestQueryCapWithManyCategories(t *testing.T) {
	t.Parallel()

	categories := []string{"one", "two", "three", "four", "five", "six"}
	queries := generateSemanticQueries("Acme", categories)
	if len(queries) > maxSemanticQueries {
		t.Errorf("query count %d exceeds cap", len(queries))
	}
	// Only the first three categories contribute.
	for _, q := range queries {
		if strings.Contains(q, "four") || strings.Contains(q, "five") || strings.Contains(q, "six") {
			t.Errorf("query %q uses a category past the limit", q)
		}
	}
}

func TestMockProbeDeterminism(t *testing.T) {
	t.Parallel()

	queries := generateSemanticQueries("Acme", nil)
	a := mockProbeResponses("Acme", queries)
	b := mockProbeResponses("Acme", queries)

	if a.BrandMentions != b.BrandMentions || a.TotalResponses != b.TotalResponses {
		t.Error("mock probes must be deterministic")
	}
	if a.TotalResponses != mockProbeLimit {
		t.Errorf("TotalResponses = %d, want %d", a.TotalResponses, mockProbeLimit)
	}
	// Every other response mentions the brand.
	if a.BrandMentions != mockProbeLimit/2 {
		t.Errorf("BrandMentions = %d, want %d", a.BrandMentions, mockProbeLimit/2)
	}
	for i, resp := range a.Responses {
		if resp.BrandMentioned != (i%2 == 0) {
			t.Errorf("response %d mention flag wrong", i)
		}
	}
}
