package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/BerylCAtieno/kanine-extractor/internal/middleware"
	"github.com/BerylCAtieno/kanine-extractor/internal/models"
	"github.com/BerylCAtieno/kanine-extractor/internal/services"
	"github.com/BerylCAtieno/kanine-extractor/internal/utils"
)

// multipartOverhead covers the form boundaries and part headers around the file.
const multipartOverhead = 1 << 20

type ContractHandler struct {
	service     services.ContractService
	maxFileSize int64
	logger      *utils.Logger
}

func NewContractHandler(service services.ContractService, maxFileSize int64, logger *utils.Logger) *ContractHandler {
	return &ContractHandler{
		service:     service,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

func (h *ContractHandler) ExtractContract(w http.ResponseWriter, r *http.Request) {
	tooLarge := utils.NewPayloadTooLargeError(fmt.Sprintf("File size exceeds %d bytes limit", h.maxFileSize))

	// Reject oversized requests before reading the body
	if r.ContentLength > h.maxFileSize+multipartOverhead {
		h.respondError(w, r, tooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, tooLarge)
			return
		}
		h.respondError(w, r, utils.NewBadRequestError("Invalid form data"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, r, utils.NewBadRequestError("No file provided"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		h.respondError(w, r, utils.NewInternalError("Failed to read file"))
		return
	}
	if int64(len(data)) > h.maxFileSize {
		h.respondError(w, r, tooLarge)
		return
	}
	if len(data) == 0 {
		h.respondError(w, r, utils.NewBadRequestError("Uploaded file is empty"))
		return
	}

	reqLogger := h.logger.With("request_id", middleware.GetRequestID(r.Context()))
	reqLogger.Info("Contract upload",
		"filename", header.Filename,
		"reported_content_type", header.Header.Get("Content-Type"),
		"size", len(data))

	record := h.service.ExtractMetadata(r.Context(), &models.ExtractRequest{
		File:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})

	if includeText, _ := strconv.ParseBool(r.URL.Query().Get("include_text")); !includeText {
		record.RawText = ""
	}

	reqLogger.Info("Contract processed",
		"filename", record.Filename,
		"method", record.ExtractionMethod,
		"ai_error", record.AIError)

	h.respondJSON(w, http.StatusOK, record)
}

func (h *ContractHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// NotFound answers unknown routes with the usual JSON error body.
func (h *ContractHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, r, utils.NewNotFoundError(fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path)))
}

func (h *ContractHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *ContractHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		message = appErr.Message
	}

	h.logger.Warn("Request error",
		"status", status,
		"error", message,
		"request_id", middleware.GetRequestID(r.Context()))

	h.respondJSON(w, status, map[string]string{"error": message})
}
