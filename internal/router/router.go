package router

import (
	"net/http"

	"github.com/BerylCAtieno/kanine-extractor/internal/handlers"
	"github.com/BerylCAtieno/kanine-extractor/internal/middleware"
	"github.com/BerylCAtieno/kanine-extractor/internal/services"
	"github.com/BerylCAtieno/kanine-extractor/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(contractService services.ContractService, maxFileSize int64, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	contractHandler := handlers.NewContractHandler(contractService, maxFileSize, logger)
	r.NotFoundHandler = http.HandlerFunc(contractHandler.NotFound)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", contractHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/contracts/extract", contractHandler.ExtractContract).Methods(http.MethodPost, http.MethodOptions)

	return r
}
