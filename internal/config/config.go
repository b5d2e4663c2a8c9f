package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samber/lo"

	"htmlhead/internal/html"
)

type Config struct {
	Analytics AnalyticsConfig `json:"analytics"`
	Document  DocumentConfig  `json:"document"`
	Server    ServerConfig    `json:"server"`
	Log       LogConfig       `json:"log"`
}

type AnalyticsConfig struct {
	GoogleTagID      string `json:"google_tag_id"`
	LegacyTrackingID string `json:"legacy_tracking_id"` // analytics.js, legacy doctypes only
	ClarityProjectID string `json:"clarity_project_id"`
}

type DocumentConfig struct {
	Doctype     string `json:"doctype"`
	Encoding    string `json:"encoding"`
	ContentType string `json:"content_type"`
	// PreloadImages are written as preload scripts, in order.
	PreloadImages []string `json:"preload_images"`
}

type ServerConfig struct {
	Addr string `json:"addr"`
}

type LogConfig struct {
	Level        string `json:"level"`
	OTLPEndpoint string `json:"otlp_endpoint"`
}

// Load reads configuration from the environment, after loading a .env file in
// the working directory if there is one.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	encoding := getEnvOrDefault("DOCUMENT_ENCODING", "utf-8")
	config := &Config{
		Analytics: AnalyticsConfig{
			GoogleTagID:      os.Getenv("GOOGLE_TAG_ID"),
			LegacyTrackingID: os.Getenv("GA_TRACKING_ID"),
			ClarityProjectID: os.Getenv("CLARITY_PROJECT_ID"),
		},
		Document: DocumentConfig{
			Doctype:       getEnvOrDefault("DOCTYPE", "html5"),
			Encoding:      encoding,
			ContentType:   getEnvOrDefault("CONTENT_TYPE", defaultContentType(encoding)),
			PreloadImages: splitList(os.Getenv("PRELOAD_IMAGES")),
		},
		Server: ServerConfig{
			Addr: getEnvOrDefault("ADDR", ":8080"),
		},
		Log: LogConfig{
			Level:        getEnvOrDefault("LOG_LEVEL", "info"),
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
	}

	return config, nil
}

// Validate checks the document settings. An encoding the platform cannot
// provide is a configuration error, not something to recover from per page.
func (c *Config) Validate() error {
	if _, err := html.ParseDoctype(c.Document.Doctype); err != nil {
		return fmt.Errorf("invalid DOCTYPE: %w", err)
	}
	if _, err := html.CanonicalEncoding(c.Document.Encoding); err != nil {
		return fmt.Errorf("invalid DOCUMENT_ENCODING: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

// DocumentOptions returns the html.Document options for these settings. Call
// Validate first.
func (c *Config) DocumentOptions() []html.Option {
	doctype := lo.Must(html.ParseDoctype(c.Document.Doctype))
	return []html.Option{
		html.WithDoctype(doctype),
		html.WithEncoding(c.Document.Encoding),
	}
}

// defaultContentType names the canonical charset so the http-equiv meta agrees
// with the charset meta and the Document encoding. An unknown label is kept
// as is for Validate to report.
func defaultContentType(encoding string) string {
	if name, err := html.CanonicalEncoding(encoding); err == nil {
		encoding = name
	}
	return "text/html; charset=" + encoding
}

func getEnvOrDefault(key, defaultValue string) string {
	return lo.CoalesceOrEmpty(strings.TrimSpace(os.Getenv(key)), defaultValue)
}

func splitList(value string) []string {
	return lo.Compact(lo.Map(strings.Split(value, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}
