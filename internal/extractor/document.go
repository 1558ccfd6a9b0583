package extractor

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/BerylCAtieno/kanine-extractor/internal/utils"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeText = "text/plain"
)

// DetectContentType prefers the file extension and falls back to the
// reported header. Unknown types are treated as PDF, the upload default.
func DetectContentType(filename, reported string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return ContentTypePDF
	case ".docx":
		return ContentTypeDOCX
	case ".txt":
		return ContentTypeText
	}

	mediaType, _, err := mime.ParseMediaType(reported)
	if err != nil {
		return ContentTypePDF
	}
	switch mediaType {
	case ContentTypeDOCX, "application/vnd.openxmlformats-officedocument.wordprocessingml",
		"application/docx", "application/x-docx":
		return ContentTypeDOCX
	case ContentTypeText, "text/txt", "application/txt", "application/x-txt":
		return ContentTypeText
	default:
		return ContentTypePDF
	}
}

// ExtractText never fails. A document that cannot be parsed yields "" and
// callers treat near-empty text as unreadable.
func ExtractText(data []byte, contentType string, logger *utils.Logger) string {
	var (
		text string
		err  error
	)

	switch contentType {
	case ContentTypeDOCX:
		text, err = ExtractDOCX(data)
	case ContentTypeText:
		text, err = ExtractTXT(data)
	default:
		text, err = ExtractPDF(data)
	}

	if err != nil {
		logger.Warn("Text extraction failed, continuing with empty text",
			"content_type", contentType,
			"size", len(data),
			"error", err)
		return ""
	}

	return text
}
