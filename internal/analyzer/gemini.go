package analyzer

import (
	"context"
	"errors"
	"strings"

	"github.com/BerylCAtieno/kanine-extractor/internal/models"
	"github.com/BerylCAtieno/kanine-extractor/internal/utils"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiRefiner calls the Gemini generative API with a JSON response MIME
// type and a response schema mirroring the six fields.
type GeminiRefiner struct {
	apiKey     string
	model      string
	maxChars   int
	clientOpts []option.ClientOption
	logger     *utils.Logger
}

func NewGeminiRefiner(apiKey, model string, logger *utils.Logger, clientOpts ...option.ClientOption) *GeminiRefiner {
	return &GeminiRefiner{
		apiKey:     apiKey,
		model:      model,
		maxChars:   PrimaryTextLimit,
		clientOpts: clientOpts,
		logger:     logger,
	}
}

func (r *GeminiRefiner) Refine(ctx context.Context, text string, baseline *models.ExtractedRecord) (*models.RefinedFields, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(r.apiKey)}, r.clientOpts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, geminiError(err)
	}
	defer client.Close()

	model := client.GenerativeModel(r.model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = refinedGenaiSchema()

	prompt := BuildPrompt(utils.TruncateRunes(text, r.maxChars), baseline)

	r.logger.Info("Sending request to generative provider", "provider", ProviderGemini, "model", r.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, geminiError(err)
	}

	content := responseText(resp)
	if content == "" {
		return nil, &ProviderError{Provider: ProviderGemini, Err: ErrEmptyResponse}
	}

	fields, err := DecodeRefined(content)
	if err != nil {
		r.logger.Error("Failed to parse generative response", "model", r.model, "error", err)
		return nil, &ProviderError{Provider: ProviderGemini, Err: err}
	}

	return fields, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

func refinedGenaiSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"parties":             str("Contracting parties"),
			"signatureDate":       str("Signature date, YYYY-MM-DD"),
			"expiryDate":          str("Expiry date, YYYY-MM-DD"),
			"value":               str("Total contract value, R$ X.XXX,XX"),
			"cancellationClauses": str("Notice period and termination fines"),
			"summary":             str("2-3 sentence summary in Portuguese"),
		},
		Required: []string{"parties", "signatureDate", "expiryDate", "value", "cancellationClauses", "summary"},
	}
}

func geminiError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: ProviderGemini, StatusCode: apiErr.Code, Err: err}
	}
	return &ProviderError{Provider: ProviderGemini, Err: err}
}
