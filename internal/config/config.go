// file: internal/config/config.go
// version: 2.0.0
// guid: 7b8c9d0e-1f2a-3b4c-5d6e-7f8a9b0c1d2e

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/jdfalk/bookstreamer/internal/metadata"
	"github.com/spf13/viper"
)

// Summary and cover provider names accepted in configuration.
const (
	SummaryProviderGemini  = "gemini"
	SummaryProviderOpenAI  = "openai"
	CoverProviderGoogle    = "googlebooks"
	CoverProviderOpenLib   = "openlibrary"
	redactedPlaceholder    = "********"
	defaultMaxBodyBytes    = 1 << 20
	defaultShutdownTimeout = 30 * time.Second
)

// DefaultAllowedOrigins are the browser origins served by default.
var DefaultAllowedOrigins = []string{
	"https://bookstreamer-app.vercel.app",
	"http://localhost:3000",
}

// Config holds application configuration. It is built once at start-up and
// passed explicitly to the components that need it.
type Config struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`

	SummaryProvider string        `yaml:"summary_provider"` // "gemini" (default) or "openai"
	SummaryTimeout  time.Duration `yaml:"summary_timeout"`
	GeminiAPIKey    string        `yaml:"gemini_api_key"`
	GeminiModel     string        `yaml:"gemini_model"`
	GeminiBaseURL   string        `yaml:"gemini_base_url,omitempty"`
	OpenAIAPIKey    string        `yaml:"openai_api_key"`
	OpenAIModel     string        `yaml:"openai_model"`
	OpenAIBaseURL   string        `yaml:"openai_base_url,omitempty"`

	CoverProvider      string        `yaml:"cover_provider"` // "googlebooks" (default) or "openlibrary"
	CoverTimeout       time.Duration `yaml:"cover_timeout"`
	CoverRewrites      []string      `yaml:"cover_rewrites"`
	GoogleBooksBaseURL string        `yaml:"google_books_base_url,omitempty"`
	GoogleBooksAPIKey  string        `yaml:"google_books_api_key"`
	OpenLibraryBaseURL string        `yaml:"openlibrary_base_url,omitempty"`

	LogLevel   string `yaml:"log_level"`
	LogFile    string `yaml:"log_file,omitempty"`
	LogConsole bool   `yaml:"log_console"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "5000")
	v.SetDefault("read_timeout", "15s")
	v.SetDefault("write_timeout", "30s")
	v.SetDefault("idle_timeout", "60s")
	v.SetDefault("shutdown_timeout", defaultShutdownTimeout.String())
	v.SetDefault("allowed_origins", DefaultAllowedOrigins)
	v.SetDefault("max_body_bytes", defaultMaxBodyBytes)

	v.SetDefault("summary_provider", SummaryProviderGemini)
	v.SetDefault("summary_timeout", "10s")
	v.SetDefault("gemini_model", "gemini-1.5-flash")
	v.SetDefault("openai_model", "gpt-4o-mini")

	v.SetDefault("cover_provider", CoverProviderGoogle)
	v.SetDefault("cover_timeout", "8s")
	v.SetDefault("cover_rewrites", metadata.DefaultRewrites)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_console", false)
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		Host:            v.GetString("host"),
		Port:            v.GetString("port"),
		ReadTimeout:     v.GetDuration("read_timeout"),
		WriteTimeout:    v.GetDuration("write_timeout"),
		IdleTimeout:     v.GetDuration("idle_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		AllowedOrigins:  splitList(v.GetStringSlice("allowed_origins")),
		MaxBodyBytes:    v.GetInt64("max_body_bytes"),

		SummaryProvider: strings.ToLower(strings.TrimSpace(v.GetString("summary_provider"))),
		SummaryTimeout:  v.GetDuration("summary_timeout"),
		GeminiAPIKey:    v.GetString("gemini_api_key"),
		GeminiModel:     v.GetString("gemini_model"),
		GeminiBaseURL:   v.GetString("gemini_base_url"),
		OpenAIAPIKey:    v.GetString("openai_api_key"),
		OpenAIModel:     v.GetString("openai_model"),
		OpenAIBaseURL:   v.GetString("openai_base_url"),

		CoverProvider:      strings.ToLower(strings.TrimSpace(v.GetString("cover_provider"))),
		CoverTimeout:       v.GetDuration("cover_timeout"),
		CoverRewrites:      splitList(v.GetStringSlice("cover_rewrites")),
		GoogleBooksBaseURL: v.GetString("google_books_base_url"),
		GoogleBooksAPIKey:  v.GetString("google_books_api_key"),
		OpenLibraryBaseURL: v.GetString("openlibrary_base_url"),

		LogLevel:   v.GetString("log_level"),
		LogFile:    v.GetString("log_file"),
		LogConsole: v.GetBool("log_console"),
	}

	// Normalize provider aliases
	switch cfg.SummaryProvider {
	case "google", "genai":
		cfg.SummaryProvider = SummaryProviderGemini
	case "chatgpt":
		cfg.SummaryProvider = SummaryProviderOpenAI
	}
	switch cfg.CoverProvider {
	case "google", "google_books", "google-books":
		cfg.CoverProvider = CoverProviderGoogle
	case "open_library", "open-library", "ol":
		cfg.CoverProvider = CoverProviderOpenLib
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	switch c.SummaryProvider {
	case SummaryProviderGemini, SummaryProviderOpenAI:
	default:
		return fmt.Errorf("unknown summary_provider %q (want %s or %s)", c.SummaryProvider, SummaryProviderGemini, SummaryProviderOpenAI)
	}
	switch c.CoverProvider {
	case CoverProviderGoogle, CoverProviderOpenLib:
	default:
		return fmt.Errorf("unknown cover_provider %q (want %s or %s)", c.CoverProvider, CoverProviderGoogle, CoverProviderOpenLib)
	}
	if c.SummaryTimeout <= 0 {
		return fmt.Errorf("summary_timeout must be positive, got %s", c.SummaryTimeout)
	}
	if c.CoverTimeout <= 0 {
		return fmt.Errorf("cover_timeout must be positive, got %s", c.CoverTimeout)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if _, err := metadata.ParseRewrites(c.CoverRewrites); err != nil {
		return err
	}
	return nil
}

// Rewrites parses CoverRewrites; Load has already validated them.
func (c Config) Rewrites() []metadata.Rewrite {
	rw, _ := metadata.ParseRewrites(c.CoverRewrites)
	return rw
}

// Redacted returns a copy with secrets masked, for display.
func (c Config) Redacted() Config {
	out := c
	out.AllowedOrigins = append([]string(nil), c.AllowedOrigins...)
	out.CoverRewrites = append([]string(nil), c.CoverRewrites...)
	for _, secret := range []*string{&out.GeminiAPIKey, &out.OpenAIAPIKey, &out.GoogleBooksAPIKey} {
		if *secret != "" {
			*secret = redactedPlaceholder
		}
	}
	return out
}

// Addr returns host:port for the HTTP listener.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// splitList accepts both YAML lists and comma separated env values.
// Neither origins nor rewrite markers may contain a comma.
func splitList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
