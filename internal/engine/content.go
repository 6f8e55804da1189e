// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package engine

import (
	"regexp"
	"sort"
	"strings"
)

// ContentChunk is a paragraph-level slice of brand content with derived
// features used by the metric calculations.
type ContentChunk struct {
	Text         string
	WordCount    int
	Keywords     []string
	HasStructure bool
	Confidence   float64
}

// structureIndicators mark content that carries lists, headings, or other
// machine-readable shape.
var structureIndicators = []string{":", "-", "•", "1.", "2."}

var wordPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// stopWords excluded from keyword extraction.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {},
}

// chunkContent splits a content sample into paragraph chunks. Paragraphs
// shorter than 20 bytes are dropped as noise.
func chunkContent(contentSample string) []ContentChunk {
	if contentSample == "" {
		return nil
	}

	paragraphs := strings.Split(contentSample, "\n\n")
	chunks := make([]ContentChunk, 0, len(paragraphs))
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if len(para) < 20 {
			continue
		}

		wordCount := len(strings.Fields(para))
		confidence := float64(wordCount) / 50.0
		if confidence > 1.0 {
			confidence = 1.0
		}

		chunks = append(chunks, ContentChunk{
			Text:         para,
			WordCount:    wordCount,
			Keywords:     extractKeywords(para, 10),
			HasStructure: hasStructure(para),
			Confidence:   confidence,
		})
	}
	return chunks
}

// defaultChunk produces the minimal chunk used when no content sample was
// provided, so downstream calculations always have input.
func defaultChunk(brandName string) []ContentChunk {
	text := brandName + " is a company that provides products and services."
	return []ContentChunk{{
		Text:         text,
		WordCount:    len(strings.Fields(text)),
		Keywords:     extractKeywords(text, 10),
		HasStructure: false,
		Confidence:   0.2,
	}}
}

func hasStructure(text string) bool {
	for _, indicator := range structureIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}

// extractKeywords returns the most frequent non-stopword terms of text,
// most frequent first, ties broken alphabetically for determinism.
func extractKeywords(text string, limit int) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int)
	for _, word := range words {
		if _, stop := stopWords[word]; stop {
			continue
		}
		counts[word]++
	}

	keywords := make([]string, 0, len(counts))
	for word := range counts {
		keywords = append(keywords, word)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})

	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords
}

// chunkRetrievalFrequency scores chunk quality: substantial word count,
// structure, and keyword richness each contribute.
func chunkRetrievalFrequency(chunks []ContentChunk) float64 {
	if len(chunks) == 0 {
		return 0.0
	}

	quality := 0.0
	for _, chunk := range chunks {
		score := 0.0
		if chunk.WordCount > 50 {
			score += 0.4
		}
		if chunk.HasStructure {
			score += 0.3
		}
		if len(chunk.Keywords) > 3 {
			score += 0.3
		}
		quality += score
	}

	avg := quality / float64(len(chunks))
	if avg > 1.0 {
		return 1.0
	}
	return avg
}

// semanticDensity scores how information-dense the chunks are.
func semanticDensity(chunks []ContentChunk) float64 {
	if len(chunks) == 0 {
		return 0.0
	}

	total := 0.0
	for _, chunk := range chunks {
		density := 0.0
		switch {
		case chunk.WordCount > 50:
			density += 0.3
		case chunk.WordCount > 20:
			density += 0.2
		}
		if chunk.HasStructure {
			density += 0.3
		}
		switch {
		case len(chunk.Keywords) > 3:
			density += 0.4
		case len(chunk.Keywords) > 1:
			density += 0.2
		}
		if density > 1.0 {
			density = 1.0
		}
		total += density
	}
	return clamp01(total / float64(len(chunks)))
}

// lexicalSimilarity measures term overlap between two texts as a stand-in
// for embedding cosine similarity: shared non-stopword terms over the
// smaller term set.
func lexicalSimilarity(a, b string) float64 {
	termsA := termSet(a)
	termsB := termSet(b)
	if len(termsA) == 0 || len(termsB) == 0 {
		return 0.0
	}

	smaller := termsA
	larger := termsB
	if len(termsB) < len(termsA) {
		smaller, larger = termsB, termsA
	}

	shared := 0
	for term := range smaller {
		if _, ok := larger[term]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(smaller))
}

func termSet(text string) map[string]struct{} {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		if _, stop := stopWords[word]; stop {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}

// embeddingRelevance averages similarity between every chunk and every
// query. With no input it falls back to a neutral default.
func embeddingRelevance(chunks []ContentChunk, queries []string) float64 {
	if len(chunks) == 0 || len(queries) == 0 {
		return 0.5
	}

	total := 0.0
	comparisons := 0
	for _, chunk := range chunks {
		for _, query := range queries {
			total += lexicalSimilarity(chunk.Text, query)
			comparisons++
		}
	}
	if comparisons == 0 {
		return 0.6
	}
	return clamp01(total / float64(comparisons))
}

// questionTypes are the answer shapes probed by answerCoverage.
var questionTypes = []string{
	"what is", "how does", "what are", "how much", "where can",
	"what's the", "how to", "what are the benefits", "is it good",
}

// answerCoverage estimates how many common question shapes the content can
// answer: a question type counts as covered when some chunk clears a
// similarity threshold against any query of that shape.
func answerCoverage(chunks []ContentChunk, queries []string) float64 {
	if len(chunks) == 0 || len(queries) == 0 {
		return 0.5
	}

	answered := 0
	for _, questionType := range questionTypes {
		covered := false
		for _, query := range queries {
			if !strings.Contains(strings.ToLower(query), questionType) {
				continue
			}
			for _, chunk := range chunks {
				if lexicalSimilarity(chunk.Text, query) > 0.3 {
					covered = true
					break
				}
			}
			if covered {
				break
			}
		}
		if covered {
			answered++
		}
	}
	return clamp01(float64(answered) / float64(len(questionTypes)))
}

// machineAuthority blends attribution, semantic density, and index presence
// into an authority estimate.
func machineAuthority(attributionRate, semanticDensity, indexPresence float64) float64 {
	return clamp01(0.4*attributionRate + 0.3*semanticDensity + 0.3*indexPresence)
}
