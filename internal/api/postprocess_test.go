// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package api

import (
	"math"
	"testing"
)

func TestTopMetrics(t *testing.T) {
	t.Parallel()

	metrics := map[string]interface{}{
		"attribution_rate":        0.9,
		"semantic_density_score":  0.3,
		"llm_answer_coverage":     0.7,
		"ai_citation_count":       12,
		"chunk_retrieval":         0.5,
		"embedding_relevance":     0.6,
		"machine_authority":       0.4,
	}

	top := topMetrics(metrics)
	if len(top) != 5 {
		t.Fatalf("got %d entries, want 5", len(top))
	}
	if top[0].Metric != "ai_citation_count" || top[0].Score != 12 {
		t.Errorf("top entry = %+v", top[0])
	}
	if top[1].Metric != "attribution_rate" {
		t.Errorf("second entry = %+v", top[1])
	}
	for i := 1; i < len(top); i++ {
		if top[i].Score > top[i-1].Score {
			t.Errorf("entries not sorted: %v before %v", top[i-1], top[i])
		}
	}
}

func TestTopMetricsNonNumeric(t *testing.T) {
	t.Parallel()

	metrics := map[string]interface{}{
		"numeric": 0.5,
		"text":    "n/a",
	}
	top := topMetrics(metrics)
	if len(top) != 2 {
		t.Fatalf("got %d entries, want 2", len(top))
	}
	if top[0].Metric != "numeric" {
		t.Errorf("numeric metric should rank above non-numeric, got %+v", top)
	}
	if top[1].Score != 0 {
		t.Errorf("non-numeric value should rank as 0, got %f", top[1].Score)
	}
}

func TestTopMetricsTieOrderDeterministic(t *testing.T) {
	t.Parallel()

	metrics := map[string]interface{}{
		"beta":  0.5,
		"alpha": 0.5,
		"gamma": 0.5,
	}
	for i := 0; i < 10; i++ {
		top := topMetrics(metrics)
		if top[0].Metric != "alpha" || top[1].Metric != "beta" || top[2].Metric != "gamma" {
			t.Fatalf("tie order not deterministic: %+v", top)
		}
	}
}

func TestImprovementAreas(t *testing.T) {
	t.Parallel()

	metrics := map[string]interface{}{
		"strong":   0.9,
		"weak":     0.2,
		"mid":      0.65,
		"boundary": 0.7,
		"text":     "skip",
	}

	areas := improvementAreas(metrics)
	if len(areas) != 2 {
		t.Fatalf("got %d areas, want 2: %+v", len(areas), areas)
	}
	if areas[0].Metric != "weak" {
		t.Errorf("largest gap should come first, got %+v", areas[0])
	}
	if areas[0].TargetScore != 0.8 {
		t.Errorf("target = %f, want 0.8", areas[0].TargetScore)
	}
	if math.Abs(areas[0].ImprovementNeeded-0.6) > 1e-9 {
		t.Errorf("improvement needed = %f, want 0.6", areas[0].ImprovementNeeded)
	}
	for _, a := range areas {
		if a.Metric == "boundary" {
			t.Error("value at the threshold should not be an improvement area")
		}
		if a.Metric == "text" {
			t.Error("non-numeric values should be excluded")
		}
	}
}

func TestImprovementAreasTruncated(t *testing.T) {
	t.Parallel()

	metrics := map[string]interface{}{
		"a": 0.1, "b": 0.2, "c": 0.3, "d": 0.4, "e": 0.5, "f": 0.6,
	}
	areas := improvementAreas(metrics)
	if len(areas) != 5 {
		t.Errorf("got %d areas, want 5", len(areas))
	}
}

func TestScoreBreakdown(t *testing.T) {
	t.Parallel()

	metrics := map[string]interface{}{
		"low":   0.2,
		"high":  0.8,
		"count": 10,
		"text":  "skip",
	}

	breakdown := scoreBreakdown(metrics)
	if breakdown["total_metrics"] != 3 {
		t.Errorf("total_metrics = %v, want 3", breakdown["total_metrics"])
	}
	if breakdown["min_score"] != 0.2 {
		t.Errorf("min_score = %v", breakdown["min_score"])
	}
	if breakdown["max_score"] != 10.0 {
		t.Errorf("max_score = %v", breakdown["max_score"])
	}
	avg, _ := breakdown["average_score"].(float64)
	if math.Abs(avg-11.0/3.0) > 1e-9 {
		t.Errorf("average_score = %f", avg)
	}

	empty := scoreBreakdown(map[string]interface{}{"text": "only"})
	if len(empty) != 0 {
		t.Errorf("breakdown with no numeric entries should be empty, got %v", empty)
	}
}

func TestNumericValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{0.5, 0.5, true},
		{float32(0.25), 0.25, true},
		{7, 7, true},
		{int64(3), 3, true},
		{"0.5", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tc := range cases {
		got, ok := numericValue(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("numericValue(%v) = (%f, %v), want (%f, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
