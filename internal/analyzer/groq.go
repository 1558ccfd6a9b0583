package analyzer

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/BerylCAtieno/kanine-extractor/internal/models"
	"github.com/BerylCAtieno/kanine-extractor/internal/utils"
	"github.com/sashabaranov/go-openai"
)

// ChatRefiner talks to an OpenAI-compatible chat-completion endpoint (Groq)
// in JSON-object mode.
type ChatRefiner struct {
	client   *openai.Client
	model    string
	maxChars int
	limiter  *WindowLimiter
	logger   *utils.Logger
}

type ChatRefinerOptions struct {
	APIKey   string
	BaseURL  string
	Model    string
	MaxChars int
	// Limiter guards every outbound call; nil disables the quota.
	Limiter *WindowLimiter
}

func NewChatRefiner(opts ChatRefinerOptions, logger *utils.Logger) *ChatRefiner {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = &http.Client{
		Timeout: 60 * time.Second,
	}

	maxChars := opts.MaxChars
	if maxChars <= 0 {
		maxChars = PrimaryTextLimit
	}

	return &ChatRefiner{
		client:   openai.NewClientWithConfig(cfg),
		model:    opts.Model,
		maxChars: maxChars,
		limiter:  opts.Limiter,
		logger:   logger,
	}
}

func (r *ChatRefiner) Refine(ctx context.Context, text string, baseline *models.ExtractedRecord) (*models.RefinedFields, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ProviderError{Provider: ProviderGroq, Err: err}
	}
	if r.limiter != nil && !r.limiter.Allow() {
		r.logger.Warn("AI quota exhausted, skipping chat completion", "model", r.model)
		return nil, &ProviderError{Provider: ProviderGroq, StatusCode: http.StatusTooManyRequests, Err: ErrRateLimited}
	}

	prompt := BuildPrompt(utils.TruncateRunes(text, r.maxChars), baseline)

	attrs := []any{"provider", ProviderGroq, "model", r.model}
	if r.limiter != nil {
		attrs = append(attrs, "quota_remaining", r.limiter.Remaining())
	}
	r.logger.Info("Sending request to chat-completion provider", attrs...)
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, openAIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, &ProviderError{Provider: ProviderGroq, Err: ErrEmptyResponse}
	}

	fields, err := DecodeRefined(resp.Choices[0].Message.Content)
	if err != nil {
		r.logger.Error("Failed to parse chat-completion response", "model", r.model, "error", err)
		return nil, &ProviderError{Provider: ProviderGroq, Err: err}
	}

	return fields, nil
}

func openAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: ProviderGroq, StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ProviderError{Provider: ProviderGroq, StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &ProviderError{Provider: ProviderGroq, Err: err}
}
