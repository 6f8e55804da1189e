// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package store

import "time"

// Plan names and their monthly analysis limits.
const (
	PlanFree         = "free"
	PlanStarter      = "starter"
	PlanGrowth       = "growth"
	PlanProfessional = "professional"
)

// PlanAnalysisLimits maps a plan to its monthly analysis allowance.
var PlanAnalysisLimits = map[string]int{
	PlanFree:         5,
	PlanStarter:      25,
	PlanGrowth:       100,
	PlanProfessional: 500,
}

// User is a registered API user. The stored record includes the password
// hash; API response shapes strip it before it reaches the wire.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	FullName     string    `json:"full_name"`
	Company      string    `json:"company,omitempty"`
	Role         string    `json:"role"`
	Plan         string    `json:"plan"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Brand is a tracked brand owned by a user.
type Brand struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	WebsiteURL      string    `json:"website_url,omitempty"`
	Industry        string    `json:"industry,omitempty"`
	TrackingEnabled bool      `json:"tracking_enabled"`
	OwnerID         string    `json:"owner_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Analysis is a persisted analysis run for a brand.
type Analysis struct {
	ID             string                 `json:"id"`
	BrandName      string                 `json:"brand_name"`
	OwnerID        string                 `json:"owner_id"`
	AnalysisType   string                 `json:"analysis_type"`
	Status         string                 `json:"status"`
	Metrics        map[string]interface{} `json:"metrics,omitempty"`
	OverallScore   float64                `json:"overall_score"`
	Grade          string                 `json:"grade,omitempty"`
	ProcessingTime float64                `json:"processing_time_seconds"`
	CreatedAt      time.Time              `json:"created_at"`
}
