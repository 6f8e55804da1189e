// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

// HTTP request bodies with go-playground/validator tags. Custom tags
// (brand_name, safe_url, category, max_bytes) are registered in
// internal/validation.
package api

import "strings"

// AnalyzeBrandRequest is the body for POST /api/v2/analyze-brand.
type AnalyzeBrandRequest struct {
	BrandName         string   `json:"brand_name" validate:"required,brand_name"`
	WebsiteURL        string   `json:"website_url" validate:"omitempty,safe_url"`
	ProductCategories []string `json:"product_categories" validate:"omitempty,max=10,dive,category"`
	ContentSample     string   `json:"content_sample" validate:"omitempty,max_bytes=50000"`
	CompetitorBrands  []string `json:"competitor_brands" validate:"omitempty,max=5,dive,brand_name"`
}

// Normalize trims user-supplied strings before validation so length rules
// apply to the meaningful content.
func (r *AnalyzeBrandRequest) Normalize() {
	r.BrandName = strings.TrimSpace(r.BrandName)
	r.WebsiteURL = strings.TrimSpace(r.WebsiteURL)
	for i, c := range r.ProductCategories {
		r.ProductCategories[i] = strings.TrimSpace(c)
	}
	for i, b := range r.CompetitorBrands {
		r.CompetitorBrands[i] = strings.TrimSpace(b)
	}
}

// OptimizationMetricsRequest is the body for POST /api/v2/optimization-metrics.
type OptimizationMetricsRequest struct {
	BrandName     string `json:"brand_name" validate:"required,brand_name"`
	WebsiteURL    string `json:"website_url" validate:"omitempty,safe_url"`
	ContentSample string `json:"content_sample" validate:"omitempty,max_bytes=50000"`
}

func (r *OptimizationMetricsRequest) Normalize() {
	r.BrandName = strings.TrimSpace(r.BrandName)
	r.WebsiteURL = strings.TrimSpace(r.WebsiteURL)
}

// AnalyzeQueriesRequest is the body for POST /api/v2/analyze-queries.
// Query analysis has nothing to work from without categories, so at least
// one is required.
type AnalyzeQueriesRequest struct {
	BrandName         string   `json:"brand_name" validate:"required,brand_name"`
	ProductCategories []string `json:"product_categories" validate:"required,min=1,max=10,dive,category"`
}

func (r *AnalyzeQueriesRequest) Normalize() {
	r.BrandName = strings.TrimSpace(r.BrandName)
	for i, c := range r.ProductCategories {
		r.ProductCategories[i] = strings.TrimSpace(c)
	}
}

// RegisterRequest is the body for POST /api/v2/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
	Company  string `json:"company" validate:"omitempty,max=100"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	r.Company = strings.TrimSpace(r.Company)
}

// LoginRequest is the body for POST /api/v2/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
}

// PasswordResetRequest is the body for POST /api/v2/auth/password-reset.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *PasswordResetRequest) Normalize() {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
}

// PasswordResetConfirmRequest is the body for
// POST /api/v2/auth/password-reset/confirm.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}
