package analyzer

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/BerylCAtieno/kanine-extractor/internal/config"
	"github.com/BerylCAtieno/kanine-extractor/internal/models"
	"github.com/BerylCAtieno/kanine-extractor/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRefiner struct {
	fields *models.RefinedFields
	err    error
	calls  int
	texts  []string
}

func (s *stubRefiner) Refine(_ context.Context, text string, _ *models.ExtractedRecord) (*models.RefinedFields, error) {
	s.calls++
	s.texts = append(s.texts, text)
	return s.fields, s.err
}

func TestFallbackRefiner_PrimarySucceeds(t *testing.T) {
	primary := &stubRefiner{fields: &models.RefinedFields{Value: "R$ 1,00"}}
	secondary := &stubRefiner{}

	fields, err := NewFallbackRefiner(primary, secondary, 0, utils.NewNopLogger()).Refine(context.Background(), "t", baselineRecord())

	require.NoError(t, err)
	assert.Equal(t, "R$ 1,00", fields.Value)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackRefiner_ExactlyOneFallbackAttempt(t *testing.T) {
	primary := &stubRefiner{err: &ProviderError{Provider: ProviderGemini, StatusCode: http.StatusServiceUnavailable, Err: errors.New("down")}}
	secondary := &stubRefiner{fields: &models.RefinedFields{Summary: "ok"}}

	fields, err := NewFallbackRefiner(primary, secondary, 0, utils.NewNopLogger()).Refine(context.Background(), "t", baselineRecord())

	require.NoError(t, err)
	assert.Equal(t, "ok", fields.Summary)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestFallbackRefiner_BothFailReturnsPrimaryError(t *testing.T) {
	primaryErr := &ProviderError{Provider: ProviderGemini, StatusCode: http.StatusUnauthorized, Err: errors.New("bad key")}
	primary := &stubRefiner{err: primaryErr}
	secondary := &stubRefiner{err: &ProviderError{Provider: ProviderGroq, StatusCode: http.StatusTooManyRequests, Err: ErrRateLimited}}

	_, err := NewFallbackRefiner(primary, secondary, 0, utils.NewNopLogger()).Refine(context.Background(), "t", baselineRecord())

	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	assert.Contains(t, err.Error(), "fallback")
	assert.Equal(t, 1, secondary.calls)
}

func TestFallbackRefiner_NoSecondary(t *testing.T) {
	primary := &stubRefiner{err: errors.New("boom")}

	_, err := NewFallbackRefiner(primary, nil, 0, utils.NewNopLogger()).Refine(context.Background(), "t", baselineRecord())

	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, primary.calls)
}

func TestNewFromConfig(t *testing.T) {
	logger := utils.NewNopLogger()
	limiter := NewWindowLimiter(20, 60e9, nil)

	t.Run("groq has no fallback", func(t *testing.T) {
		r := NewFromConfig(&config.Config{AIProvider: config.ProviderGroq, GroqAPIKey: "k", AIModel: "big"}, limiter, logger)
		fb, ok := r.(*FallbackRefiner)
		require.True(t, ok)
		assert.IsType(t, &ChatRefiner{}, fb.Primary)
		assert.Nil(t, fb.Secondary)
		assert.Equal(t, "big", fb.Primary.(*ChatRefiner).model)
		assert.Same(t, limiter, fb.Primary.(*ChatRefiner).limiter)
	})

	t.Run("gemini falls back to the small groq model", func(t *testing.T) {
		cfg := &config.Config{
			AIProvider:    config.ProviderGemini,
			GoogleAPIKey:  "g",
			GroqAPIKey:    "k",
			GeminiModel:   "gemini-flash-latest",
			FallbackModel: "llama-3.1-8b-instant",
		}
		fb := NewFromConfig(cfg, limiter, logger).(*FallbackRefiner)

		assert.IsType(t, &GeminiRefiner{}, fb.Primary)
		secondary, ok := fb.Secondary.(*ChatRefiner)
		require.True(t, ok)
		assert.Equal(t, "llama-3.1-8b-instant", secondary.model)
		assert.Equal(t, FallbackTextLimit, secondary.maxChars)
	})

	t.Run("gemini without groq key has no fallback", func(t *testing.T) {
		fb := NewFromConfig(&config.Config{AIProvider: config.ProviderGemini, GoogleAPIKey: "g"}, limiter, logger).(*FallbackRefiner)
		assert.Nil(t, fb.Secondary)
	})
}

// deadlineRefiner waits for its context and records the deadline it was given.
type deadlineRefiner struct {
	deadlines []time.Time
}

func (d *deadlineRefiner) Refine(ctx context.Context, _ string, _ *models.ExtractedRecord) (*models.RefinedFields, error) {
	deadline, _ := ctx.Deadline()
	d.deadlines = append(d.deadlines, deadline)
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestFallbackRefiner_EachAttemptGetsItsOwnTimeout(t *testing.T) {
	primary := &deadlineRefiner{}
	secondary := &stubRefiner{fields: &models.RefinedFields{Summary: "ok"}}

	start := time.Now()
	fields, err := NewFallbackRefiner(primary, secondary, 50*time.Millisecond, utils.NewNopLogger()).
		Refine(context.Background(), "t", baselineRecord())

	require.NoError(t, err)
	assert.Equal(t, "ok", fields.Summary)
	require.Len(t, primary.deadlines, 1)
	assert.WithinDuration(t, start.Add(50*time.Millisecond), primary.deadlines[0], 40*time.Millisecond)
	assert.Equal(t, 1, secondary.calls)
}

func TestFallbackRefiner_CancelledRequestSkipsFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := &stubRefiner{err: context.Canceled}
	secondary := &stubRefiner{}

	_, err := NewFallbackRefiner(primary, secondary, time.Second, utils.NewNopLogger()).Refine(ctx, "t", baselineRecord())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, secondary.calls)
}
