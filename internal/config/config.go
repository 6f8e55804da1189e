// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

// Package config provides layered configuration loading for BackendSight.
//
// Configuration is resolved with the following precedence (highest wins):
//
//  1. Environment variables
//  2. Optional YAML config file
//  3. Built-in defaults
//
// Missing LLM provider keys never prevent startup: the engine falls back to
// deterministic mock responses when keys are absent or set to "test_key".
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the BackendSight server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
	Engine   EngineConfig   `koanf:"engine"`
	Store    StoreConfig    `koanf:"store"`
	API      APIConfig      `koanf:"api"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// SecurityConfig holds authentication and rate limiting settings.
type SecurityConfig struct {
	// JWTSecret signs access and password-reset tokens. Must be set outside
	// the test environment; in test an ephemeral secret is generated.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTL is the access token lifetime.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// ResetTokenTTL is the password-reset token lifetime.
	ResetTokenTTL time.Duration `koanf:"reset_token_ttl"`

	// BcryptCost controls password hashing work factor.
	BcryptCost int `koanf:"bcrypt_cost"`

	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// EngineConfig holds analysis engine and LLM provider settings.
type EngineConfig struct {
	AnthropicAPIKey string        `koanf:"anthropic_api_key"`
	OpenAIAPIKey    string        `koanf:"openai_api_key"`
	ClaudeModel     string        `koanf:"claude_model"`
	GPTModel        string        `koanf:"gpt_model"`
	MaxTokens       int           `koanf:"max_tokens"`
	Temperature     float64       `koanf:"temperature"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`

	// RequestsPerMinute limits outbound LLM calls across both providers.
	RequestsPerMinute int `koanf:"requests_per_minute"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	// Path is the Badger database directory. Empty selects an in-memory
	// store, which is what tests and the default test environment use.
	Path string `koanf:"path"`
}

// APIConfig holds pagination settings for listing endpoints.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// Validate checks the configuration for impossible values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("security.token_ttl must be positive, got %s", c.Security.TokenTTL)
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost must be 4-31, got %d", c.Security.BcryptCost)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_requests must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	if c.Engine.MaxTokens <= 0 {
		return fmt.Errorf("engine.max_tokens must be positive, got %d", c.Engine.MaxTokens)
	}
	if c.Engine.Temperature < 0 || c.Engine.Temperature > 2 {
		return fmt.Errorf("engine.temperature must be 0-2, got %f", c.Engine.Temperature)
	}
	if c.API.DefaultPageSize <= 0 || c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api page sizes invalid: default %d, max %d", c.API.DefaultPageSize, c.API.MaxPageSize)
	}
	return nil
}

// IsTestEnvironment reports whether the server runs in the test environment.
func (c *Config) IsTestEnvironment() bool {
	return c.Server.Environment == "test"
}

// IsProduction reports whether the server runs in production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
