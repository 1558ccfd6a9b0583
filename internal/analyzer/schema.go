package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/kanine-extractor/internal/models"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// refinedSchema requires all six fields as strings. Empty strings are
// allowed; the merge keeps the regex value for those.
const refinedSchema = `{
	"type": "object",
	"required": ["parties", "signatureDate", "expiryDate", "value", "cancellationClauses", "summary"],
	"properties": {
		"parties":             {"type": "string"},
		"signatureDate":       {"type": "string"},
		"expiryDate":          {"type": "string"},
		"value":               {"type": "string"},
		"cancellationClauses": {"type": "string"},
		"summary":             {"type": "string"}
	}
}`

var compiledRefinedSchema = jsonschema.MustCompileString("refined.json", refinedSchema)

// DecodeRefined validates a provider reply against the six-field schema
// and decodes it. Any deviation is ErrMalformedResponse.
func DecodeRefined(content string) (*models.RefinedFields, error) {
	content = strings.TrimSpace(extractJSON(strings.TrimSpace(content)))
	if content == "" {
		return nil, ErrEmptyResponse
	}

	var doc any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := compiledRefinedSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var fields models.RefinedFields
	dec := json.NewDecoder(bytes.NewReader([]byte(content)))
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &fields, nil
}

// extractJSON strips a markdown code fence around the reply, if any.
func extractJSON(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}

	start := strings.IndexByte(content, '\n')
	end := strings.LastIndex(content, "```")
	if start < 0 || end <= start {
		return content
	}
	return content[start+1 : end]
}
