// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package engine

import "github.com/SaeedSubayyal/BACKENDSIGHT/internal/logging"

// OptimizationMetrics holds the twelve AI-visibility metrics computed for a
// brand. All float metrics are fractions in [0,1]; AICitationCount is an
// absolute count.
type OptimizationMetrics struct {
	ChunkRetrievalFrequency   float64 `json:"chunk_retrieval_frequency"`
	EmbeddingRelevanceScore   float64 `json:"embedding_relevance_score"`
	AttributionRate           float64 `json:"attribution_rate"`
	AICitationCount           int     `json:"ai_citation_count"`
	VectorIndexPresenceRate   float64 `json:"vector_index_presence_rate"`
	RetrievalConfidenceScore  float64 `json:"retrieval_confidence_score"`
	RRFRankContribution       float64 `json:"rrf_rank_contribution"`
	LLMAnswerCoverage         float64 `json:"llm_answer_coverage"`
	AIModelCrawlSuccessRate   float64 `json:"ai_model_crawl_success_rate"`
	SemanticDensityScore      float64 `json:"semantic_density_score"`
	ZeroClickSurfacePresence  float64 `json:"zero_click_surface_presence"`
	MachineValidatedAuthority float64 `json:"machine_validated_authority"`
}

// scoreWeights holds the contribution of each metric to the overall score.
// Citation count is normalized against a target of 40 before weighting.
var scoreWeights = struct {
	attribution float64
	citation    float64
	embedding   float64
	chunk       float64
	semantic    float64
	coverage    float64
	zeroClick   float64
	authority   float64
	vector      float64
	confidence  float64
	rrf         float64
	crawl       float64
}{
	attribution: 0.15,
	citation:    0.10,
	embedding:   0.12,
	chunk:       0.10,
	semantic:    0.10,
	coverage:    0.12,
	zeroClick:   0.08,
	authority:   0.13,
	vector:      0.04,
	confidence:  0.03,
	rrf:         0.02,
	crawl:       0.01,
}

const citationTarget = 40.0

// OverallScore computes the weighted overall optimization score in [0,1].
func (m *OptimizationMetrics) OverallScore() float64 {
	citationScore := float64(m.AICitationCount) / citationTarget
	if citationScore > 1.0 {
		citationScore = 1.0
	}

	score := m.AttributionRate*scoreWeights.attribution +
		citationScore*scoreWeights.citation +
		m.EmbeddingRelevanceScore*scoreWeights.embedding +
		m.ChunkRetrievalFrequency*scoreWeights.chunk +
		m.SemanticDensityScore*scoreWeights.semantic +
		m.LLMAnswerCoverage*scoreWeights.coverage +
		m.ZeroClickSurfacePresence*scoreWeights.zeroClick +
		m.MachineValidatedAuthority*scoreWeights.authority +
		m.VectorIndexPresenceRate*scoreWeights.vector +
		m.RetrievalConfidenceScore*scoreWeights.confidence +
		m.RRFRankContribution*scoreWeights.rrf +
		m.AIModelCrawlSuccessRate*scoreWeights.crawl

	return clamp01(score)
}

// Grade converts a score to a letter grade.
func Grade(score float64) string {
	switch {
	case score >= 0.9:
		return "A+"
	case score >= 0.8:
		return "A"
	case score >= 0.7:
		return "B+"
	case score >= 0.6:
		return "B"
	case score >= 0.5:
		return "C+"
	case score >= 0.4:
		return "C"
	default:
		return "F"
	}
}

// Sanitize clamps out-of-range metric values to a neutral 0.5 (counts to 0)
// so a miscalculated metric never poisons the overall score.
func (m *OptimizationMetrics) Sanitize() {
	fields := []*float64{
		&m.ChunkRetrievalFrequency,
		&m.EmbeddingRelevanceScore,
		&m.AttributionRate,
		&m.VectorIndexPresenceRate,
		&m.RetrievalConfidenceScore,
		&m.RRFRankContribution,
		&m.LLMAnswerCoverage,
		&m.AIModelCrawlSuccessRate,
		&m.SemanticDensityScore,
		&m.ZeroClickSurfacePresence,
		&m.MachineValidatedAuthority,
	}
	for _, f := range fields {
		if *f < 0 || *f > 1 {
			logging.Warn().Float64("value", *f).Msg("metric out of range, resetting to 0.5")
			*f = 0.5
		}
	}
	if m.AICitationCount < 0 {
		logging.Warn().Int("value", m.AICitationCount).Msg("negative citation count, resetting to 0")
		m.AICitationCount = 0
	}
}

// ToMap renders the metrics as the wire map used by response post-processing
// and persisted analyses.
func (m *OptimizationMetrics) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"chunk_retrieval_frequency":   m.ChunkRetrievalFrequency,
		"embedding_relevance_score":   m.EmbeddingRelevanceScore,
		"attribution_rate":            m.AttributionRate,
		"ai_citation_count":           m.AICitationCount,
		"vector_index_presence_rate":  m.VectorIndexPresenceRate,
		"retrieval_confidence_score":  m.RetrievalConfidenceScore,
		"rrf_rank_contribution":       m.RRFRankContribution,
		"llm_answer_coverage":         m.LLMAnswerCoverage,
		"ai_model_crawl_success_rate": m.AIModelCrawlSuccessRate,
		"semantic_density_score":      m.SemanticDensityScore,
		"zero_click_surface_presence": m.ZeroClickSurfacePresence,
		"machine_validated_authority": m.MachineValidatedAuthority,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
