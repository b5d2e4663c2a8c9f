package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htmlhead/internal/html"
)

var envKeys = []string{
	"GOOGLE_TAG_ID", "GA_TRACKING_ID", "CLARITY_PROJECT_ID", "DOCTYPE",
	"DOCUMENT_ENCODING", "CONTENT_TYPE", "PRELOAD_IMAGES", "ADDR", "LOG_LEVEL",
	"OTEL_EXPORTER_OTLP_ENDPOINT",
}

// clearEnv isolates a test from the process environment and any .env file.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "html5", cfg.Document.Doctype)
	assert.Equal(t, "utf-8", cfg.Document.Encoding)
	assert.Equal(t, "text/html; charset=utf-8", cfg.Document.ContentType)
	assert.Empty(t, cfg.Document.PreloadImages)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Analytics.GoogleTagID)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_TAG_ID", "G-ENV")
	t.Setenv("CLARITY_PROJECT_ID", "clar1")
	t.Setenv("DOCTYPE", "transitional")
	t.Setenv("DOCUMENT_ENCODING", "ISO-8859-1")
	t.Setenv("PRELOAD_IMAGES", " /a.png , ,/b.png?x=1&y=2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "G-ENV", cfg.Analytics.GoogleTagID)
	assert.Equal(t, "clar1", cfg.Analytics.ClarityProjectID)
	assert.Equal(t, "text/html; charset=windows-1252", cfg.Document.ContentType)
	assert.Equal(t, []string{"/a.png", "/b.png?x=1&y=2"}, cfg.Document.PreloadImages)
	require.NoError(t, cfg.Validate())

	doc, err := html.NewDocument(&discard{}, cfg.DocumentOptions()...)
	require.NoError(t, err)
	assert.Equal(t, html.Transitional, doc.Doctype())
	assert.Equal(t, "windows-1252", doc.Encoding())
}

func TestLoadKeepsExplicitContentType(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCUMENT_ENCODING", "latin1")
	t.Setenv("CONTENT_TYPE", "text/html; charset=ISO-8859-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=ISO-8859-1", cfg.Document.ContentType)
}

func TestLoadUnknownEncodingFailsValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCUMENT_ENCODING", "klingon-8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=klingon-8", cfg.Document.ContentType)
	assert.ErrorContains(t, cfg.Validate(), "DOCUMENT_ENCODING")
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	for _, key := range envKeys {
		require.NoError(t, os.Unsetenv(key))
	}
	dir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GOOGLE_TAG_ID=G-DOTENV\nDOCTYPE=strict\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("GOOGLE_TAG_ID")
		_ = os.Unsetenv("DOCTYPE")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "G-DOTENV", cfg.Analytics.GoogleTagID)
	assert.Equal(t, "strict", cfg.Document.Doctype)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Document: DocumentConfig{Doctype: "html5", Encoding: "utf-8"},
			Log:      LogConfig{Level: "info"},
		}
	}

	cfg := base()
	cfg.Document.Doctype = "xhtml9"
	assert.ErrorContains(t, cfg.Validate(), "DOCTYPE")

	cfg = base()
	cfg.Document.Encoding = "no-such-charset"
	assert.ErrorContains(t, cfg.Validate(), "DOCUMENT_ENCODING")

	cfg = base()
	cfg.Log.Level = "loud"
	assert.ErrorContains(t, cfg.Validate(), "LOG_LEVEL")

	assert.NoError(t, base().Validate())
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
