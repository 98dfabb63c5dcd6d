// file: internal/config/config_test.go
// version: 2.0.0
// guid: b2c3d4e5-f6a7-8b9c-0d1e-2f3a4b5c6d7e

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/jdfalk/bookstreamer/internal/metadata"
	"github.com/spf13/viper"
)

func newEnvViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// TestLoadDefaults tests configuration initialization with defaults
func TestLoadDefaults(t *testing.T) {
	// Arrange
	v := viper.New()

	// Act
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Assert
	if cfg.Port != "5000" {
		t.Errorf("Expected default port 5000, got %q", cfg.Port)
	}
	if cfg.SummaryProvider != SummaryProviderGemini {
		t.Errorf("Expected gemini summary provider, got %q", cfg.SummaryProvider)
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("Expected default gemini model, got %q", cfg.GeminiModel)
	}
	if cfg.CoverProvider != CoverProviderGoogle {
		t.Errorf("Expected googlebooks cover provider, got %q", cfg.CoverProvider)
	}
	if cfg.SummaryTimeout != 10*time.Second || cfg.CoverTimeout != 8*time.Second {
		t.Errorf("Unexpected lookup timeouts: %s / %s", cfg.SummaryTimeout, cfg.CoverTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://bookstreamer-app.vercel.app" {
		t.Errorf("Unexpected allowed origins: %v", cfg.AllowedOrigins)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Errorf("Expected 1MiB body limit, got %d", cfg.MaxBodyBytes)
	}
	if len(cfg.Rewrites()) != 2 {
		t.Errorf("Expected two default cover rewrites, got %v", cfg.CoverRewrites)
	}
	if cfg.Addr() != "0.0.0.0:5000" {
		t.Errorf("Unexpected addr %q", cfg.Addr())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("COVER_TIMEOUT", "2s")
	t.Setenv("COVER_REWRITES", "zoom=5=>zoom=1,&edge=curl=>")

	cfg, err := Load(newEnvViper())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8081" {
		t.Errorf("Expected port from env, got %q", cfg.Port)
	}
	if cfg.GeminiAPIKey != "env-key" {
		t.Errorf("Expected API key from env, got %q", cfg.GeminiAPIKey)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("Expected model from env, got %q", cfg.GeminiModel)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("Expected comma separated origins to be split, got %v", cfg.AllowedOrigins)
	}
	if cfg.CoverTimeout != 2*time.Second {
		t.Errorf("Expected cover timeout from env, got %s", cfg.CoverTimeout)
	}
	rewrites := cfg.Rewrites()
	if len(rewrites) != 2 || rewrites[0].To != "zoom=1" || rewrites[1].From != "&edge=curl" {
		t.Errorf("Expected comma separated rewrites to be split, got %+v", rewrites)
	}
	got := metadata.NormalizeCoverURL("http://books.google.com/x?id=1&zoom=5&edge=curl", rewrites)
	if got != "https://books.google.com/x?id=1&zoom=1" {
		t.Errorf("Unexpected normalized cover URL %q", got)
	}
}

func TestLoadProviderAliases(t *testing.T) {
	v := viper.New()
	v.Set("summary_provider", " ChatGPT ")
	v.Set("cover_provider", "open-library")

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SummaryProvider != SummaryProviderOpenAI {
		t.Errorf("Expected openai, got %q", cfg.SummaryProvider)
	}
	if cfg.CoverProvider != CoverProviderOpenLib {
		t.Errorf("Expected openlibrary, got %q", cfg.CoverProvider)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
		want string
	}{
		{"unknown summary provider", "summary_provider", "claude", "summary_provider"},
		{"unknown cover provider", "cover_provider", "amazon", "cover_provider"},
		{"zero summary timeout", "summary_timeout", "0s", "summary_timeout"},
		{"negative cover timeout", "cover_timeout", "-1s", "cover_timeout"},
		{"bad rewrite", "cover_rewrites", []string{"zoom=5"}, "cover rewrite"},
		{"empty port", "port", "", "port"},
		{"zero body limit", "max_body_bytes", 0, "max_body_bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.val)
			_, err := Load(v)
			if err == nil {
				t.Fatalf("Expected error for %s", tt.key)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := Config{
		GeminiAPIKey:   "secret-gemini",
		OpenAIAPIKey:   "",
		AllowedOrigins: []string{"http://localhost:3000"},
	}

	red := cfg.Redacted()
	if red.GeminiAPIKey != redactedPlaceholder {
		t.Errorf("Expected gemini key to be masked, got %q", red.GeminiAPIKey)
	}
	if red.OpenAIAPIKey != "" {
		t.Errorf("Expected empty key to stay empty, got %q", red.OpenAIAPIKey)
	}
	if cfg.GeminiAPIKey != "secret-gemini" {
		t.Error("Redacted must not modify the original")
	}
	red.AllowedOrigins[0] = "changed"
	if cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Error("Redacted must copy slices")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{"a, b", "", " c "})
	if strings.Join(got, "|") != "a|b|c" {
		t.Errorf("splitList() = %v", got)
	}
}
