package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/BerylCAtieno/kanine-extractor/internal/analyzer"
	"github.com/BerylCAtieno/kanine-extractor/internal/config"
	"github.com/BerylCAtieno/kanine-extractor/internal/extractor"
	"github.com/BerylCAtieno/kanine-extractor/internal/models"
	"github.com/BerylCAtieno/kanine-extractor/internal/utils"
)

// MinReadableText is the number of non-blank runes below which a document is
// judged unreadable and never sent to a provider.
const MinReadableText = 50

// aiError labels shown to the user.
const (
	ReasonDisabled       = "Disabled in env"
	ReasonNoKeyFormat    = "No API Key for %s"
	ReasonUnreadable     = "PDF ilegível (Texto vazio)"
	ReasonInvalidKey     = "Chave Inválida (401)"
	ReasonRateLimited    = "Rate Limit Excedido"
	ReasonPayloadTooBig  = "Arquivo Muito Grande"
	ReasonGenericAIError = "Erro na IA"
)

type ContractService interface {
	// ExtractMetadata is total: any input yields a complete record.
	ExtractMetadata(ctx context.Context, req *models.ExtractRequest) *models.ExtractedRecord
}

type contractService struct {
	cfg     *config.Config
	refiner analyzer.Refiner
	logger  *utils.Logger
}

// NewService wires the pipeline. refiner may be nil when AI is disabled; it
// owns the per-attempt timeouts (see analyzer.NewFromConfig).
func NewService(cfg *config.Config, refiner analyzer.Refiner, logger *utils.Logger) ContractService {
	return &contractService{
		cfg:     cfg,
		refiner: refiner,
		logger:  logger,
	}
}

func (s *contractService) ExtractMetadata(ctx context.Context, req *models.ExtractRequest) *models.ExtractedRecord {
	contentType := extractor.DetectContentType(req.Filename, req.ContentType)
	text := extractor.ExtractText(req.File, contentType, s.logger)

	record := extractor.ExtractBaseline(text)
	if req.Filename != "" {
		record.Filename = req.Filename
	}

	s.logger.Debug("AI configuration",
		"enabled", s.cfg.AIEnabled,
		"provider", s.cfg.AIProvider,
		"has_key", s.cfg.HasProviderKey())

	if reason := s.skipReason(text); reason != "" {
		s.logger.Info("Using regex-only extraction", "filename", record.Filename, "reason", reason)
		record.AIError = reason
		return record
	}

	s.logger.Info("Refining extraction with AI",
		"filename", record.Filename,
		"provider", s.cfg.AIProvider,
		"text_length", utf8.RuneCountInString(text))

	fields, err := s.refiner.Refine(ctx, text, record)
	if err != nil {
		record.AIError = Classify(err)
		s.logger.Error("AI refinement failed, keeping regex results",
			"filename", record.Filename,
			"classification", record.AIError,
			"error", err)
		return record
	}

	Merge(record, fields)
	s.logger.Info("Contract metadata extracted", "filename", record.Filename, "method", record.ExtractionMethod)
	return record
}

func (s *contractService) skipReason(text string) string {
	switch {
	case !s.cfg.AIEnabled || s.refiner == nil:
		return ReasonDisabled
	case !s.cfg.HasProviderKey():
		return fmt.Sprintf(ReasonNoKeyFormat, s.cfg.AIProvider)
	case utf8.RuneCountInString(strings.TrimSpace(text)) < MinReadableText:
		return ReasonUnreadable
	}
	return ""
}

// Merge overlays every non-empty AI field onto record and marks it as refined.
func Merge(record *models.ExtractedRecord, fields *models.RefinedFields) {
	overlay := func(dst *string, src string) {
		if strings.TrimSpace(src) != "" {
			*dst = src
		}
	}

	overlay(&record.Parties, fields.Parties)
	overlay(&record.SignatureDate, fields.SignatureDate)
	overlay(&record.ExpiryDate, fields.ExpiryDate)
	overlay(&record.Value, fields.Value)
	overlay(&record.CancellationClauses, fields.CancellationClauses)
	overlay(&record.Summary, fields.Summary)

	record.ExtractionMethod = models.MethodRegexAI
	record.AIError = ""
}

// Classify maps a refinement failure to its user-facing label.
func Classify(err error) string {
	switch analyzer.StatusCode(err) {
	case http.StatusUnauthorized:
		return ReasonInvalidKey
	case http.StatusTooManyRequests:
		return ReasonRateLimited
	case http.StatusRequestEntityTooLarge:
		return ReasonPayloadTooBig
	default:
		return ReasonGenericAIError
	}
}
