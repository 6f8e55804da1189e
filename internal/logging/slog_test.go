// BackendSight - AI Visibility Analytics for Brands
// Copyright 2026 Saeed Subayyal (SaeedSubayyal)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaeedSubayyal/BACKENDSIGHT

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSlogLoggerWritesThroughZerolog(t *testing.T) {
	original := Logger()
	t.Cleanup(func() { SetLogger(original) })

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	slogger := NewSlogLogger()
	slogger.Info("service started", "port", int64(8000), "host", "0.0.0.0")

	out := buf.String()
	for _, want := range []string{"service started", `"port":8000`, `"host":"0.0.0.0"`, `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogLoggerGroupsAndAttrs(t *testing.T) {
	original := Logger()
	t.Cleanup(func() { SetLogger(original) })

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	slogger := NewSlogLogger().With("service", "api").WithGroup("supervisor")
	slogger.Warn("restarting", "attempt", int64(2))

	out := buf.String()
	if !strings.Contains(out, `"service":"api"`) {
		t.Errorf("pre-group attr should keep its key: %s", out)
	}
	if !strings.Contains(out, `"supervisor.attempt":2`) {
		t.Errorf("grouped attr should use the dotted key: %s", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("slog warn should map to zerolog warn: %s", out)
	}
}
