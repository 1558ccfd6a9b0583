package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/BerylCAtieno/kanine-extractor/internal/models"
	"github.com/BerylCAtieno/kanine-extractor/internal/utils"
)

// FallbackRefiner tries Primary and, when it fails and Secondary is set,
// makes exactly one more attempt with Secondary. Each attempt runs under its
// own Timeout, so a primary that times out still leaves the secondary a full
// budget. If both fail the primary error is returned so it drives the
// classification.
type FallbackRefiner struct {
	Primary   Refiner
	Secondary Refiner
	// Timeout bounds each attempt; zero means only the caller's context applies.
	Timeout time.Duration
	logger  *utils.Logger
}

func NewFallbackRefiner(primary, secondary Refiner, timeout time.Duration, logger *utils.Logger) *FallbackRefiner {
	return &FallbackRefiner{Primary: primary, Secondary: secondary, Timeout: timeout, logger: logger}
}

func (f *FallbackRefiner) Refine(ctx context.Context, text string, baseline *models.ExtractedRecord) (*models.RefinedFields, error) {
	fields, err := f.attempt(ctx, f.Primary, text, baseline)
	if err == nil {
		return fields, nil
	}

	f.logger.Warn("Primary AI provider failed", "error", err)
	if f.Secondary == nil {
		return nil, err
	}
	if ctx.Err() != nil {
		// The request itself is gone; a fallback could not be delivered.
		return nil, err
	}

	f.logger.Info("Retrying with fallback provider")
	fields, fbErr := f.attempt(ctx, f.Secondary, text, baseline)
	if fbErr == nil {
		return fields, nil
	}

	f.logger.Error("Fallback AI provider also failed", "error", fbErr)
	return nil, fmt.Errorf("%w (fallback: %v)", err, fbErr)
}

func (f *FallbackRefiner) attempt(ctx context.Context, r Refiner, text string, baseline *models.ExtractedRecord) (*models.RefinedFields, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	return r.Refine(ctx, text, baseline)
}
