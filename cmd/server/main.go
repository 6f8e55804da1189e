// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

// Package main is the entry point for the BackendSight server.
//
// BackendSight analyzes how visible a brand is inside AI assistant answers.
// It probes LLM responses for brand mentions, computes a twelve-metric
// optimization profile, and serves results through a JSON API.
//
// The server initializes components in order:
//
//  1. Configuration: koanf v2 layered loading (defaults, config.yaml, env)
//  2. Store: BadgerDB for users, brands, and analysis history
//  3. Engine: LLM probing clients with circuit breakers, or mock mode
//  4. Authentication: JWT (HS256) with bcrypt password hashing
//  5. HTTP server: chi router under a suture supervisor tree
//
// Engine credentials come from ANTHROPIC_API_KEY and OPENAI_API_KEY. When
// both are unset or "test_key" the engine runs in deterministic mock mode,
// so the server always starts.
//
// Shutdown on SIGINT/SIGTERM is graceful: the server stops accepting
// connections and in-flight requests get a bounded drain window.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/api"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/auth"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/config"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/engine"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/logging"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/store"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/supervisor"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("store_path", cfg.Store.Path).
		Msg("Starting BackendSight")

	// An empty JWT secret is only tolerated in the test environment, where an
	// ephemeral one keeps local runs working. Tokens do not survive restarts.
	if cfg.Security.JWTSecret == "" {
		if !cfg.IsTestEnvironment() {
			logging.Fatal().Msg("SECRET_KEY must be set outside the test environment")
		}
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			logging.Fatal().Err(err).Msg("Failed to generate ephemeral JWT secret")
		}
		cfg.Security.JWTSecret = hex.EncodeToString(secret)
		logging.Warn().Msg("SECRET_KEY not set, using ephemeral secret (test environment only)")
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	eng := engine.New(engine.Config{
		AnthropicAPIKey:   cfg.Engine.AnthropicAPIKey,
		OpenAIAPIKey:      cfg.Engine.OpenAIAPIKey,
		Environment:       cfg.Server.Environment,
		ClaudeModel:       cfg.Engine.ClaudeModel,
		GPTModel:          cfg.Engine.GPTModel,
		MaxTokens:         cfg.Engine.MaxTokens,
		Temperature:       cfg.Engine.Temperature,
		RequestTimeout:    cfg.Engine.RequestTimeout,
		RequestsPerMinute: cfg.Engine.RequestsPerMinute,
	})

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}
	authMw := auth.NewMiddleware(jwtManager, false)

	handlers := api.NewHandlers(cfg, st, eng, jwtManager)
	chiMw := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins:   cfg.Security.CORSOrigins,
		CORSAllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowedHeaders:   []string{"Content-Type", "Authorization"},
		CORSAllowCredentials: false,
		CORSMaxAge:           86400,
		RateLimitRequests:    cfg.Security.RateLimitReqs,
		RateLimitWindow:      cfg.Security.RateLimitWindow,
		RateLimitDisabled:    cfg.Security.RateLimitDisabled,
	})
	router := api.NewRouter(handlers, chiMw, authMw)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("HTTP server starting")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor shutdown error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("BackendSight stopped")
}
