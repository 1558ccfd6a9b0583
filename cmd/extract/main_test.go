package main

import (
	"testing"

	"github.com/BerylCAtieno/kanine-extractor/internal/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindFlags(t *testing.T) {
	t.Setenv("AI_PROVIDER", "groq")
	t.Setenv("LOG_LEVEL", "")

	flags := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	flags.Bool("ai", false, "")
	flags.String("provider", "", "")
	flags.String("loglevel", "", "")
	require.NoError(t, flags.Parse([]string{"--ai", "--provider", "gemini"}))

	v := viper.New()
	require.NoError(t, bindFlags(v, flags))

	cfg, err := config.LoadFrom(v)
	require.NoError(t, err)
	assert.True(t, cfg.AIEnabled)
	assert.Equal(t, config.ProviderGemini, cfg.AIProvider)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestRunRequiresFile(t *testing.T) {
	assert.EqualError(t, run(nil), "--file is required")
}
