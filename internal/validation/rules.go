// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package validation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// brandNameBlocked lists characters rejected in brand names. The check is a
// substring test on the trimmed value.
const brandNameBlocked = `<>"'&`

// urlBlockedFragments are rejected anywhere in a lowercased website URL.
// Substring matching is deliberate: a URL carrying "localhost" in a path
// segment is rejected rather than risking an SSRF-shaped false negative.
var urlBlockedFragments = []string{"javascript:", "data:", "localhost", "127.0.0.1"}

// validateBrandName enforces the brand name rules: after trimming, length
// must be 2-100 runes inclusive and none of the blocked characters may
// appear.
func validateBrandName(fl validator.FieldLevel) bool {
	name := strings.TrimSpace(fl.Field().String())
	n := utf8.RuneCountInString(name)
	if n < 2 || n > 100 {
		return false
	}
	return !strings.ContainsAny(name, brandNameBlocked)
}

// validateSafeURL enforces the website URL rules. The scheme prefix check is
// case-sensitive: "HTTP://..." fails.
func validateSafeURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return false
	}
	lower := strings.ToLower(raw)
	for _, fragment := range urlBlockedFragments {
		if strings.Contains(lower, fragment) {
			return false
		}
	}
	return true
}

// validateCategory enforces per-element category rules: trimmed length at
// least 2 and at most 50 runes.
func validateCategory(fl validator.FieldLevel) bool {
	category := strings.TrimSpace(fl.Field().String())
	n := utf8.RuneCountInString(category)
	return n >= 2 && n <= 50
}

// validateMaxBytes bounds a string by raw byte length rather than rune
// count, for size limits on free-form content.
func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}
