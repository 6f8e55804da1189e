// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package engine

import (
	"math"
	"testing"
)

func perfectMetrics() OptimizationMetrics {
	return OptimizationMetrics{
		ChunkRetrievalFrequency:   1,
		EmbeddingRelevanceScore:   1,
		AttributionRate:           1,
		AICitationCount:           40,
		VectorIndexPresenceRate:   1,
		RetrievalConfidenceScore:  1,
		RRFRankContribution:       1,
		LLMAnswerCoverage:         1,
		AIModelCrawlSuccessRate:   1,
		SemanticDensityScore:      1,
		ZeroClickSurfacePresence:  1,
		MachineValidatedAuthority: 1,
	}
}

func TestOverallScore(t *testing.T) {
	t.Parallel()

	m := perfectMetrics()
	if got := m.OverallScore(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("perfect score = %f, want 1.0", got)
	}

	zero := OptimizationMetrics{}
	if got := zero.OverallScore(); got != 0 {
		t.Errorf("zero score = %f, want 0", got)
	}

	// Citation contribution caps at the target count.
	capped := OptimizationMetrics{AICitationCount: 400}
	uncapped := OptimizationMetrics{AICitationCount: 40}
	if capped.OverallScore() != uncapped.OverallScore() {
		t.Error("citation contribution should cap at the target")
	}
	if got := uncapped.OverallScore(); math.Abs(got-0.10) > 1e-9 {
		t.Errorf("citation-only score = %f, want 0.10", got)
	}

	attribution := OptimizationMetrics{AttributionRate: 1}
	if got := attribution.OverallScore(); math.Abs(got-0.15) > 1e-9 {
		t.Errorf("attribution-only score = %f, want 0.15", got)
	}
}

func TestGrade(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score float64
		want  string
	}{
		{0.95, "A+"},
		{0.9, "A+"},
		{0.85, "A"},
		{0.8, "A"},
		{0.75, "B+"},
		{0.7, "B+"},
		{0.65, "B"},
		{0.55, "C+"},
		{0.45, "C"},
		{0.4, "C"},
		{0.39, "F"},
		{0, "F"},
	}
	for _, tc := range cases {
		if got := Grade(tc.score); got != tc.want {
			t.Errorf("Grade(%f) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	m := OptimizationMetrics{
		AttributionRate:         1.7,
		SemanticDensityScore:    -0.2,
		ChunkRetrievalFrequency: 0.3,
		AICitationCount:         -5,
	}
	m.Sanitize()

	if m.AttributionRate != 0.5 {
		t.Errorf("AttributionRate = %f, want 0.5", m.AttributionRate)
	}
	if m.SemanticDensityScore != 0.5 {
		t.Errorf("SemanticDensityScore = %f, want 0.5", m.SemanticDensityScore)
	}
	if m.ChunkRetrievalFrequency != 0.3 {
		t.Errorf("ChunkRetrievalFrequency = %f, in-range value must be kept", m.ChunkRetrievalFrequency)
	}
	if m.AICitationCount != 0 {
		t.Errorf("AICitationCount = %d, want 0", m.AICitationCount)
	}
}

func TestToMap(t *testing.T) {
	t.Parallel()

	m := perfectMetrics()
	got := m.ToMap()
	if len(got) != 12 {
		t.Fatalf("map has %d keys, want 12", len(got))
	}
	if got["ai_citation_count"] != 40 {
		t.Errorf("ai_citation_count = %v", got["ai_citation_count"])
	}
	if got["attribution_rate"] != 1.0 {
		t.Errorf("attribution_rate = %v", got["attribution_rate"])
	}
}
