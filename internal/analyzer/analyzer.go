package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/kanine-extractor/internal/models"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"

	// PrimaryTextLimit is how much contract text the primary call sends.
	PrimaryTextLimit = 15000
	// FallbackTextLimit keeps the smaller fallback model under its request cap.
	FallbackTextLimit = 10000
)

var (
	ErrEmptyResponse     = errors.New("empty response from AI provider")
	ErrMalformedResponse = errors.New("malformed AI response")
	ErrRateLimited       = errors.New("AI request quota exhausted")
)

// Refiner asks a language model to correct the regex baseline.
type Refiner interface {
	Refine(ctx context.Context, text string, baseline *models.ExtractedRecord) (*models.RefinedFields, error)
}

// ProviderError records which provider failed and the HTTP status it
// answered with, when there was one.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.StatusCode
	}
	return 0
}
