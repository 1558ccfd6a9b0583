package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"

	DefaultModel         = "llama-3.3-70b-versatile"
	DefaultGeminiModel   = "gemini-flash-latest"
	DefaultFallbackModel = "llama-3.1-8b-instant"
	DefaultGroqBaseURL   = "https://api.groq.com/openai/v1"
)

type Config struct {
	Port     string
	LogLevel string

	// Upload limits
	MaxFileSize int64

	// AI refinement
	AIEnabled     bool
	AIProvider    string
	GroqAPIKey    string
	GoogleAPIKey  string
	AIModel       string
	GeminiModel   string
	FallbackModel string
	GroqBaseURL   string
	AITimeout     time.Duration

	// Outbound chat-completion quota
	AIRateLimit  int
	AIRateWindow time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_FILE_SIZE", 10*1024*1024)
	v.SetDefault("AI_ENABLED", false)
	v.SetDefault("AI_PROVIDER", ProviderGroq)
	v.SetDefault("GROQ_API_KEY", "")
	v.SetDefault("GOOGLE_API_KEY", "")
	v.SetDefault("AI_MODEL", DefaultModel)
	v.SetDefault("GEMINI_MODEL", DefaultGeminiModel)
	v.SetDefault("AI_FALLBACK_MODEL", DefaultFallbackModel)
	v.SetDefault("GROQ_BASE_URL", DefaultGroqBaseURL)
	v.SetDefault("AI_TIMEOUT", 30*time.Second)
	v.SetDefault("AI_RATE_LIMIT", 20)
	v.SetDefault("AI_RATE_WINDOW", 60*time.Second)
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom reads the configuration through v, which may already carry
// bound command line flags.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:          v.GetString("PORT"),
		LogLevel:      strings.ToLower(v.GetString("LOG_LEVEL")),
		MaxFileSize:   v.GetInt64("MAX_FILE_SIZE"),
		AIEnabled:     v.GetBool("AI_ENABLED"),
		AIProvider:    strings.ToLower(strings.TrimSpace(v.GetString("AI_PROVIDER"))),
		GroqAPIKey:    v.GetString("GROQ_API_KEY"),
		GoogleAPIKey:  v.GetString("GOOGLE_API_KEY"),
		AIModel:       v.GetString("AI_MODEL"),
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		FallbackModel: v.GetString("AI_FALLBACK_MODEL"),
		GroqBaseURL:   v.GetString("GROQ_BASE_URL"),
		AITimeout:     v.GetDuration("AI_TIMEOUT"),
		AIRateLimit:   v.GetInt("AI_RATE_LIMIT"),
		AIRateWindow:  v.GetDuration("AI_RATE_WINDOW"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks ranges and enumerations. Missing API keys are allowed:
// the pipeline reports them instead of refusing to start.
func (c *Config) Validate() error {
	if c.AIProvider != ProviderGroq && c.AIProvider != ProviderGemini {
		return fmt.Errorf("AI_PROVIDER must be %q or %q, got %q", ProviderGroq, ProviderGemini, c.AIProvider)
	}
	if c.MaxFileSize <= 0 {
		return errors.New("MAX_FILE_SIZE must be positive")
	}
	if c.AITimeout <= 0 {
		return errors.New("AI_TIMEOUT must be positive")
	}
	if c.AIRateLimit <= 0 {
		return errors.New("AI_RATE_LIMIT must be positive")
	}
	if c.AIRateWindow <= 0 {
		return errors.New("AI_RATE_WINDOW must be positive")
	}
	if c.AIModel == "" || c.FallbackModel == "" || c.GeminiModel == "" {
		return errors.New("model identifiers cannot be empty")
	}
	return nil
}

// HasProviderKey reports whether the selected provider has a credential.
func (c *Config) HasProviderKey() bool {
	if c.AIProvider == ProviderGemini {
		return c.GoogleAPIKey != ""
	}
	return c.GroqAPIKey != ""
}
