package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"AI_ENABLED", "AI_PROVIDER", "AI_MODEL", "GROQ_API_KEY", "GOOGLE_API_KEY", "AI_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.AIEnabled)
	assert.Equal(t, ProviderGroq, cfg.AIProvider)
	assert.Equal(t, DefaultModel, cfg.AIModel)
	assert.Equal(t, DefaultFallbackModel, cfg.FallbackModel)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, 20, cfg.AIRateLimit)
	assert.Equal(t, time.Minute, cfg.AIRateWindow)
	assert.False(t, cfg.HasProviderKey())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("AI_ENABLED", "true")
	t.Setenv("AI_PROVIDER", "Gemini")
	t.Setenv("GOOGLE_API_KEY", "g-key")
	t.Setenv("AI_TIMEOUT", "15s")
	t.Setenv("AI_RATE_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.AIEnabled)
	assert.Equal(t, ProviderGemini, cfg.AIProvider)
	assert.True(t, cfg.HasProviderKey())
	assert.Equal(t, 15*time.Second, cfg.AITimeout)
	assert.Equal(t, 5, cfg.AIRateLimit)
}

func TestLoadFrom_OverridesWin(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	v := viper.New()
	v.Set("AI_PROVIDER", "gemini")

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.AIProvider)
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "openai")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_PROVIDER")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			AIProvider:    ProviderGroq,
			MaxFileSize:   1,
			AITimeout:     time.Second,
			AIRateLimit:   1,
			AIRateWindow:  time.Second,
			AIModel:       "m",
			GeminiModel:   "g",
			FallbackModel: "f",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero file size", func(c *Config) { c.MaxFileSize = 0 }},
		{"zero timeout", func(c *Config) { c.AITimeout = 0 }},
		{"zero rate limit", func(c *Config) { c.AIRateLimit = 0 }},
		{"zero window", func(c *Config) { c.AIRateWindow = 0 }},
		{"empty model", func(c *Config) { c.AIModel = "" }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestHasProviderKey(t *testing.T) {
	cfg := &Config{AIProvider: ProviderGroq, GoogleAPIKey: "g"}
	assert.False(t, cfg.HasProviderKey())

	cfg.GroqAPIKey = "k"
	assert.True(t, cfg.HasProviderKey())

	cfg.AIProvider = ProviderGemini
	cfg.GoogleAPIKey = ""
	assert.False(t, cfg.HasProviderKey())
}
