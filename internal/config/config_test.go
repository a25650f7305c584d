package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SENTRYPRIME_API_URL", "")
	t.Setenv("SENTRYPRIME_SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 10, cfg.ScanMaxPages)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_ExplicitBaseURL(t *testing.T) {
	t.Setenv("SENTRYPRIME_API_URL", "https://staging.sentryprime.test")
	t.Setenv("SENTRYPRIME_SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://staging.sentryprime.test", cfg.BaseURL)
}

func TestLoad_RejectsRelativeBaseURL(t *testing.T) {
	t.Setenv("SENTRYPRIME_API_URL", "not-a-url")
	t.Setenv("SENTRYPRIME_SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SENTRYPRIME_API_URL")
}

func TestLoad_RejectsBadScanMaxPages(t *testing.T) {
	t.Setenv("SENTRYPRIME_API_URL", "")
	t.Setenv("SENTRYPRIME_SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("SENTRYPRIME_SCAN_MAX_PAGES", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SENTRYPRIME_SCAN_MAX_PAGES")
}
