// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package engine

import "fmt"

// Recommendation is an actionable improvement suggestion derived from weak
// metrics.
type Recommendation struct {
	Priority    string   `json:"priority"`
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ActionItems []string `json:"action_items"`
	Impact      string   `json:"impact"`
	Effort      string   `json:"effort"`
	Timeline    string   `json:"timeline"`
}

// RoadmapPhase is one phase of the implementation roadmap.
type RoadmapPhase struct {
	Timeline string   `json:"timeline"`
	Focus    string   `json:"focus"`
	Tasks    []string `json:"tasks"`
}

// generateRecommendations derives recommendations from metric thresholds.
func generateRecommendations(m *OptimizationMetrics) []Recommendation {
	recommendations := []Recommendation{}

	if m.AttributionRate < 0.6 {
		recommendations = append(recommendations, Recommendation{
			Priority:    "high",
			Category:    "AI Visibility",
			Title:       "Improve Attribution Rate",
			Description: fmt.Sprintf("Current attribution rate is %.1f%%. Target is 60%%+.", m.AttributionRate*100),
			ActionItems: []string{
				"Create comprehensive FAQ section",
				"Add customer testimonials and case studies",
				"Optimize content for AI model training data",
				"Ensure brand name is prominently featured in content",
			},
			Impact:   "High",
			Effort:   "Medium",
			Timeline: "2-4 weeks",
		})
	}

	if m.SemanticDensityScore < 0.7 {
		recommendations = append(recommendations, Recommendation{
			Priority:    "medium",
			Category:    "Content Optimization",
			Title:       "Enhance Semantic Density",
			Description: fmt.Sprintf("Current semantic density is %.1f%%. Target is 70%%+.", m.SemanticDensityScore*100),
			ActionItems: []string{
				"Add more structured content with headers",
				"Include relevant keywords naturally",
				"Create topic clusters for better semantic coverage",
				"Add schema markup to web pages",
			},
			Impact:   "Medium",
			Effort:   "Medium",
			Timeline: "3-6 weeks",
		})
	}

	if m.AICitationCount < 20 {
		recommendations = append(recommendations, Recommendation{
			Priority:    "high",
			Category:    "AI Training Data",
			Title:       "Increase AI Citation Opportunities",
			Description: fmt.Sprintf("Current citation count is %d. Target is 20+.", m.AICitationCount),
			ActionItems: []string{
				"Publish authoritative content on industry topics",
				"Create data-driven reports and studies",
				"Engage in industry discussions and forums",
				"Optimize content for citation-worthy information",
			},
			Impact:   "High",
			Effort:   "High",
			Timeline: "6-12 weeks",
		})
	}

	return recommendations
}

// identifyStrengths lists metric strengths, with a baseline fallback.
func identifyStrengths(m *OptimizationMetrics) []string {
	strengths := []string{}
	if m.AttributionRate > 0.8 {
		strengths = append(strengths, "High brand attribution rate")
	}
	if m.SemanticDensityScore > 0.8 {
		strengths = append(strengths, "Strong semantic content density")
	}
	if m.AICitationCount > 30 {
		strengths = append(strengths, "Excellent AI citation presence")
	}
	if m.LLMAnswerCoverage > 0.7 {
		strengths = append(strengths, "Good LLM answer coverage")
	}
	if len(strengths) == 0 {
		return []string{"Baseline metrics established"}
	}
	return strengths
}

// identifyWeaknesses lists metric weaknesses, with a fallback.
func identifyWeaknesses(m *OptimizationMetrics) []string {
	weaknesses := []string{}
	if m.AttributionRate < 0.5 {
		weaknesses = append(weaknesses, "Low brand attribution rate")
	}
	if m.SemanticDensityScore < 0.6 {
		weaknesses = append(weaknesses, "Insufficient semantic density")
	}
	if m.AICitationCount < 10 {
		weaknesses = append(weaknesses, "Limited AI citation presence")
	}
	if m.LLMAnswerCoverage < 0.5 {
		weaknesses = append(weaknesses, "Poor LLM answer coverage")
	}
	if len(weaknesses) == 0 {
		return []string{"No significant weaknesses identified"}
	}
	return weaknesses
}

// buildRoadmap produces the three-phase implementation roadmap.
func buildRoadmap() map[string]RoadmapPhase {
	return map[string]RoadmapPhase{
		"phase_1": {
			Timeline: "Weeks 1-4",
			Focus:    "Quick Wins",
			Tasks:    []string{"Content optimization", "FAQ creation", "Basic SEO improvements"},
		},
		"phase_2": {
			Timeline: "Weeks 5-12",
			Focus:    "Structural Improvements",
			Tasks:    []string{"Schema markup", "Content restructuring", "Citation opportunities"},
		},
		"phase_3": {
			Timeline: "Weeks 13-24",
			Focus:    "Advanced Optimization",
			Tasks:    []string{"AI model training data", "Advanced analytics", "Competitive positioning"},
		},
	}
}
