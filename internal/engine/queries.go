// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package engine

import (
	"fmt"
	"strings"
)

// maxSemanticQueries caps the generated query set.
const maxSemanticQueries = 50

// maxQueryCategories limits how many product categories contribute
// category-specific queries.
const maxQueryCategories = 3

// QueryAnalysis is the result of semantic query generation for a brand.
type QueryAnalysis struct {
	BrandName       string              `json:"brand_name"`
	TotalQueries    int                 `json:"total_queries"`
	Queries         []string            `json:"queries"`
	ByIntent        map[string][]string `json:"queries_by_intent"`
	PurchaseJourney map[string][]string `json:"purchase_journey"`
}

// generateSemanticQueries builds the query set used to probe AI answers for
// a brand: base brand queries, category-specific queries for up to three
// categories, and purchase-intent queries, capped at maxSemanticQueries.
func generateSemanticQueries(brandName string, productCategories []string) []string {
	queries := []string{
		fmt.Sprintf("What is %s?", brandName),
		fmt.Sprintf("Tell me about %s", brandName),
		fmt.Sprintf("How good is %s?", brandName),
		fmt.Sprintf("Is %s reliable?", brandName),
		fmt.Sprintf("What does %s do?", brandName),
		fmt.Sprintf("Who is %s?", brandName),
		fmt.Sprintf("%s reviews", brandName),
		fmt.Sprintf("%s products", brandName),
		fmt.Sprintf("%s services", brandName),
		fmt.Sprintf("How to use %s?", brandName),
		fmt.Sprintf("Where to find %s?", brandName),
		fmt.Sprintf("Why choose %s?", brandName),
		fmt.Sprintf("%s vs competitors", brandName),
		fmt.Sprintf("%s pricing", brandName),
		fmt.Sprintf("%s support", brandName),
	}

	categories := productCategories
	if len(categories) > maxQueryCategories {
		categories = categories[:maxQueryCategories]
	}
	for _, category := range categories {
		queries = append(queries,
			fmt.Sprintf("Best %s from %s", category, brandName),
			fmt.Sprintf("%s %s review", brandName, category),
			fmt.Sprintf("How good is %s %s?", brandName, category),
			fmt.Sprintf("%s %s features", brandName, category),
			fmt.Sprintf("Compare %s %s", brandName, category),
			fmt.Sprintf("%s %s price", brandName, category),
		)
	}

	queries = append(queries,
		fmt.Sprintf("Should I buy %s?", brandName),
		fmt.Sprintf("Is %s worth it?", brandName),
		fmt.Sprintf("How much does %s cost?", brandName),
		fmt.Sprintf("Where to buy %s?", brandName),
		fmt.Sprintf("%s discount", brandName),
		fmt.Sprintf("%s deals", brandName),
	)

	if len(queries) > maxSemanticQueries {
		queries = queries[:maxSemanticQueries]
	}
	return queries
}

// categorizeQueries buckets queries by search intent. Every query lands in
// exactly one bucket; unmatched queries default to transactional.
func categorizeQueries(queries []string) map[string][]string {
	categories := map[string][]string{
		"informational": {},
		"commercial":    {},
		"navigational":  {},
		"transactional": {},
	}

	for _, query := range queries {
		lower := strings.ToLower(query)
		switch {
		case containsAny(lower, "what", "how", "why", "tell me", "explain"):
			categories["informational"] = append(categories["informational"], query)
		case containsAny(lower, "buy", "purchase", "price", "cost", "deal"):
			categories["commercial"] = append(categories["commercial"], query)
		case containsAny(lower, "website", "official", "login", "contact"):
			categories["navigational"] = append(categories["navigational"], query)
		default:
			categories["transactional"] = append(categories["transactional"], query)
		}
	}
	return categories
}

// mapPurchaseJourney assigns each query to a purchase journey stage.
// Unmatched queries default to awareness.
func mapPurchaseJourney(queries []string) map[string][]string {
	journey := map[string][]string{
		"awareness":     {},
		"consideration": {},
		"decision":      {},
		"retention":     {},
	}

	for _, query := range queries {
		lower := strings.ToLower(query)
		switch {
		case containsAny(lower, "what is", "tell me", "explain"):
			journey["awareness"] = append(journey["awareness"], query)
		case containsAny(lower, "compare", "vs", "versus", "review"):
			journey["consideration"] = append(journey["consideration"], query)
		case containsAny(lower, "buy", "purchase", "price"):
			journey["decision"] = append(journey["decision"], query)
		case containsAny(lower, "support", "help", "customer"):
			journey["retention"] = append(journey["retention"], query)
		default:
			journey["awareness"] = append(journey["awareness"], query)
		}
	}
	return journey
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
