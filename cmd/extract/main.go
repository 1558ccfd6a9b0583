// Command extract runs the contract pipeline on one local file and prints
// the resulting record as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BerylCAtieno/kanine-extractor/internal/analyzer"
	"github.com/BerylCAtieno/kanine-extractor/internal/config"
	"github.com/BerylCAtieno/kanine-extractor/internal/models"
	"github.com/BerylCAtieno/kanine-extractor/internal/services"
	"github.com/BerylCAtieno/kanine-extractor/internal/utils"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	file := flags.StringP("file", "f", "", "contract to extract (PDF, DOCX or TXT)")
	flags.Bool("ai", false, "refine the regex results with the configured AI provider")
	flags.String("provider", "", "AI provider: groq or gemini")
	flags.String("loglevel", "", "log level: debug, info, warn or error")
	includeText := flags.Bool("include-text", false, "include the extracted text in the output")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("--file is required")
	}

	v := viper.New()
	if err := bindFlags(v, flags); err != nil {
		return err
	}

	cfg, err := config.LoadFrom(v)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read %s: %w", *file, err)
	}

	logger := utils.NewNopLogger()
	if flags.Changed("loglevel") {
		logger = utils.NewLoggerTo(os.Stderr, cfg.LogLevel)
	}

	var refiner analyzer.Refiner
	if cfg.AIEnabled {
		limiter := analyzer.NewWindowLimiter(cfg.AIRateLimit, cfg.AIRateWindow, nil)
		refiner = analyzer.NewFromConfig(cfg, limiter, logger)
	}

	record := services.NewService(cfg, refiner, logger).ExtractMetadata(context.Background(), &models.ExtractRequest{
		File:     data,
		Filename: filepath.Base(*file),
	})
	if !*includeText {
		record.RawText = ""
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

// bindFlags maps command line flags onto the environment keys config reads.
// A flag only overrides the environment when it was set explicitly.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range map[string]string{
		"AI_ENABLED":  "ai",
		"AI_PROVIDER": "provider",
		"LOG_LEVEL":   "loglevel",
	} {
		if !flags.Changed(name) {
			continue
		}
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}
