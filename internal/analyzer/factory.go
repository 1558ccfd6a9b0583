package analyzer

import (
	"github.com/BerylCAtieno/kanine-extractor/internal/config"
	"github.com/BerylCAtieno/kanine-extractor/internal/utils"
)

// NewFromConfig builds the refiner for the configured provider. Gemini gets
// a Groq fallback on the smaller model when a Groq key is present; Groq as
// primary has none. Both Groq refiners share one quota, and every attempt
// gets its own AITimeout.
func NewFromConfig(cfg *config.Config, limiter *WindowLimiter, logger *utils.Logger) Refiner {
	if cfg.AIProvider != config.ProviderGemini {
		return NewFallbackRefiner(NewChatRefiner(ChatRefinerOptions{
			APIKey:   cfg.GroqAPIKey,
			BaseURL:  cfg.GroqBaseURL,
			Model:    cfg.AIModel,
			MaxChars: PrimaryTextLimit,
			Limiter:  limiter,
		}, logger), nil, cfg.AITimeout, logger)
	}

	primary := NewGeminiRefiner(cfg.GoogleAPIKey, cfg.GeminiModel, logger)
	if cfg.GroqAPIKey == "" {
		return NewFallbackRefiner(primary, nil, cfg.AITimeout, logger)
	}

	secondary := NewChatRefiner(ChatRefinerOptions{
		APIKey:   cfg.GroqAPIKey,
		BaseURL:  cfg.GroqBaseURL,
		Model:    cfg.FallbackModel,
		MaxChars: FallbackTextLimit,
		Limiter:  limiter,
	}, logger)
	return NewFallbackRefiner(primary, secondary, cfg.AITimeout, logger)
}
