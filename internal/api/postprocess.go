// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package api

import (
	"sort"

	"github.com/goccy/go-json"
)

const (
	improvementThreshold = 0.7
	improvementTarget    = 0.8
	topMetricsLimit      = 5
	improvementLimit     = 5
)

// numericValue reports a metric value as a float64. Counts and json.Number
// values are converted; anything non-numeric is not.
func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

type rankedMetric struct {
	Metric string  `json:"metric"`
	Score  float64 `json:"score"`
}

// topMetrics ranks all metrics by value, highest first. Non-numeric values
// rank as 0. Keys are ordered alphabetically before the stable sort so tied
// values come out deterministically.
func topMetrics(metrics map[string]interface{}) []rankedMetric {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ranked := make([]rankedMetric, 0, len(keys))
	for _, k := range keys {
		score, _ := numericValue(metrics[k])
		ranked = append(ranked, rankedMetric{Metric: k, Score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > topMetricsLimit {
		ranked = ranked[:topMetricsLimit]
	}
	return ranked
}

type improvementArea struct {
	Metric            string  `json:"metric"`
	CurrentScore      float64 `json:"current_score"`
	TargetScore       float64 `json:"target_score"`
	ImprovementNeeded float64 `json:"improvement_needed"`
}

// improvementAreas lists numeric metrics below the improvement threshold,
// largest gap first.
func improvementAreas(metrics map[string]interface{}) []improvementArea {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	areas := make([]improvementArea, 0)
	for _, k := range keys {
		score, ok := numericValue(metrics[k])
		if !ok || score >= improvementThreshold {
			continue
		}
		areas = append(areas, improvementArea{
			Metric:            k,
			CurrentScore:      score,
			TargetScore:       improvementTarget,
			ImprovementNeeded: improvementTarget - score,
		})
	}
	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].ImprovementNeeded > areas[j].ImprovementNeeded
	})

	if len(areas) > improvementLimit {
		areas = areas[:improvementLimit]
	}
	return areas
}

// scoreBreakdown summarizes the numeric metrics. Non-numeric values are
// excluded; with no numeric entries the breakdown is empty.
func scoreBreakdown(metrics map[string]interface{}) map[string]interface{} {
	var (
		sum      float64
		minScore float64
		maxScore float64
		count    int
	)
	for _, v := range metrics {
		score, ok := numericValue(v)
		if !ok {
			continue
		}
		if count == 0 || score < minScore {
			minScore = score
		}
		if count == 0 || score > maxScore {
			maxScore = score
		}
		sum += score
		count++
	}

	if count == 0 {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"average_score": sum / float64(count),
		"min_score":     minScore,
		"max_score":     maxScore,
		"total_metrics": count,
	}
}
