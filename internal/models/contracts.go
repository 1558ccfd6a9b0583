package models

// NotIdentified is stored in every field the extractor could not resolve.
const NotIdentified = "Não identificado"

type ExtractionMethod string

const (
	MethodRegex   ExtractionMethod = "regex"
	MethodRegexAI ExtractionMethod = "regex+ai"
)

// ExtractedRecord is the metadata derived from one uploaded contract.
type ExtractedRecord struct {
	Filename            string           `json:"filename"`
	Parties             string           `json:"parties"`
	SignatureDate       string           `json:"signatureDate"`
	ExpiryDate          string           `json:"expiryDate"`
	Value               string           `json:"value"`
	CancellationClauses string           `json:"cancellationClauses"`
	Summary             string           `json:"summary"`
	ExtractionMethod    ExtractionMethod `json:"extractionMethod"`
	AIError             string           `json:"aiError,omitempty"`
	RawText             string           `json:"rawText,omitempty"`
}

// RefinedFields is the six-field object a language model returns.
type RefinedFields struct {
	Parties             string `json:"parties"`
	SignatureDate       string `json:"signatureDate"`
	ExpiryDate          string `json:"expiryDate"`
	Value               string `json:"value"`
	CancellationClauses string `json:"cancellationClauses"`
	Summary             string `json:"summary"`
}

type ExtractRequest struct {
	File        []byte
	Filename    string
	ContentType string
}
