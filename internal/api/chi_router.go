// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/auth"
	"github.com/SaeedSubayyal/BACKENDSIGHT/internal/middleware"
)

// Router wires handlers and middleware into the chi route tree.
type Router struct {
	handler        *Handlers
	chiMiddleware  *ChiMiddleware
	authMiddleware *auth.Middleware
}

// NewRouter creates a router from its dependencies.
func NewRouter(handler *Handlers, chiMw *ChiMiddleware, authMw *auth.Middleware) *Router {
	return &Router{
		handler:        handler,
		chiMiddleware:  chiMw,
		authMiddleware: authMw,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to chi's
// func(http.Handler) http.Handler.
func chiMiddlewareAdapter(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup builds the route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(RequestIDWithLogging())
	r.Use(RequestLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(Recovery())
	r.Use(router.chiMiddleware.CORS())

	// Service index and health, permissive rate limit, never authenticated.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Root)
		r.Get("/health", router.handler.Health)
	})

	// Auth endpoints, strict rate limit against brute force.
	r.Route("/api/v2/auth", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAuth())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddlewareAdapter(middleware.PrometheusMetrics))

		r.Post("/register", router.handler.Register)
		r.Post("/login", router.handler.Login)
		r.Post("/password-reset", router.handler.PasswordReset)
		r.Post("/password-reset/confirm", router.handler.PasswordResetConfirm)
	})

	// Analysis endpoints, configured per-client budget, authenticated.
	r.Route("/api/v2", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddlewareAdapter(middleware.PrometheusMetrics))
		r.Use(chiMiddlewareAdapter(router.authMiddleware.Authenticate))

		r.Post("/analyze-brand", router.handler.AnalyzeBrand)
		r.Post("/optimization-metrics", router.handler.OptimizationMetrics)
		r.Post("/analyze-queries", router.handler.AnalyzeQueries)
		r.Get("/brands", router.handler.ListBrands)
		r.Get("/brands/{brand_name}/history", router.handler.BrandHistory)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
