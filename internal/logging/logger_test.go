package logging

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	var buf bytes.Buffer
	Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &buf
}

func TestWithUser_AddsEmailAttribute(t *testing.T) {
	buf := captureLogger(t)

	WithUser("ada@example.com").Info("Signed in")

	out := buf.String()
	assert.Contains(t, out, "user_email=ada@example.com")
	assert.Contains(t, out, "Signed in")
}

func TestWithWebsite_AddsIDAttribute(t *testing.T) {
	buf := captureLogger(t)

	WithWebsite("w1").Info("Scan triggered")
	assert.Contains(t, buf.String(), "website_id=w1")
}

func TestWithError_AddsErrorAttribute(t *testing.T) {
	buf := captureLogger(t)

	WithError(stderrors.New("disk full")).Warn("Failed to clear persisted session")
	assert.Contains(t, buf.String(), `error="disk full"`)
}

func TestHelpers_SafeBeforeInit(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })
	Logger = nil

	assert.NotPanics(t, func() {
		WithUser("ada@example.com").Debug("x")
		WithWebsite("w1").Debug("x")
		WithError(stderrors.New("boom")).Debug("x")
	})
}
