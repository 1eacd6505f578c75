package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"fee_calculator/internal/domain"
	"fee_calculator/internal/engine"
	"fee_calculator/pkg/crypto"
	"fee_calculator/pkg/metrics"
	"fee_calculator/pkg/testdata"
	"fee_calculator/pkg/validator"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	maxGeneratedTransactions = 1000
	maxGeneratedBatchSize    = 10000
)

type APIHandler struct {
	engine       *engine.Engine
	orchestrator *engine.BatchOrchestrator
	catalog      *engine.Catalog
	validator    *validator.RequestValidator
	signer       *crypto.Signer
	metrics      *metrics.MetricsCollector
	generator    *testdata.Generator
	logger       *slog.Logger
}

func NewAPIHandler(
	feeEngine *engine.Engine,
	orchestrator *engine.BatchOrchestrator,
	catalog *engine.Catalog,
	requestValidator *validator.RequestValidator,
	signer *crypto.Signer,
	metricsCollector *metrics.MetricsCollector,
	logger *slog.Logger,
) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &APIHandler{
		engine:       feeEngine,
		orchestrator: orchestrator,
		catalog:      catalog,
		validator:    requestValidator,
		signer:       signer,
		metrics:      metricsCollector,
		generator:    testdata.NewGenerator(time.Now().UnixNano()),
		logger:       logger,
	}
}

// NewRouter mounts all API routes on a chi router.
func (h *APIHandler) NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/fees/calculate", h.CalculateFeeHandler)
		r.Post("/fees/calculate-batch", h.CalculateBatchHandler)
		r.Get("/fees/history", h.GetHistoryHandler)

		r.Get("/rules/processors", h.ListProcessorsHandler)
		r.Put("/rules/processors/{ruleId}/status", h.ToggleRuleStatusHandler)

		r.Get("/testdata/transactions", h.GenerateTransactionsHandler)
		r.Get("/testdata/scenarios", h.GenerateScenariosHandler)
		r.Get("/testdata/performance-batch", h.GeneratePerformanceBatchHandler)
	})

	r.Get("/api/health", h.HealthCheckHandler)

	return r
}

type CalculateFeeRequest struct {
	domain.TransactionRequest
	Signature string `json:"signature,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *APIHandler) CalculateFeeHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	var req CalculateFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "Invalid request body", http.StatusBadRequest, "INVALID_REQUEST")
		return
	}

	if err := h.validator.ValidateRequest(&req.TransactionRequest); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	if req.Signature != "" && h.signer != nil {
		valid, err := h.signer.VerifyRequest(
			req.TransactionID,
			req.Amount,
			req.Currency,
			req.TransactionDate.Unix(),
			req.Signature,
		)
		if !valid || err != nil {
			h.sendError(w, "Invalid signature", http.StatusUnauthorized, "INVALID_SIGNATURE")
			return
		}
	}

	result := h.engine.CalculateFee(r.Context(), &req.TransactionRequest)

	if h.metrics != nil {
		h.metrics.RecordCalculation(time.Since(startTime), result.Fee.InexactFloat64(), len(result.AppliedRules), result.IsSuccess)
	}

	if !result.IsSuccess {
		h.logger.Warn("Fee calculation failed",
			slog.String("transaction_id", req.TransactionID),
			slog.String("error", result.ErrorMessage))
		h.sendJSON(w, result, http.StatusBadRequest)
		return
	}

	h.sendJSON(w, result, http.StatusOK)
}

func (h *APIHandler) CalculateBatchHandler(w http.ResponseWriter, r *http.Request) {
	var batch domain.BatchTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		h.sendError(w, "Invalid request body", http.StatusBadRequest, "INVALID_REQUEST")
		return
	}

	if err := h.validator.ValidateBatch(&batch); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	result := h.orchestrator.CalculateBatch(r.Context(), &batch)

	if h.metrics != nil {
		h.metrics.RecordBatch(result.TotalTransactions)
	}

	h.sendJSON(w, result, http.StatusOK)
}

func (h *APIHandler) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	skip := parseIntDefault(r.URL.Query().Get("skip"), 0)
	take := parseIntDefault(r.URL.Query().Get("take"), 100)

	if skip < 0 || take <= 0 {
		h.sendError(w, "Skip must be non-negative and take must be positive", http.StatusBadRequest, "INVALID_PAGINATION")
		return
	}

	h.sendJSON(w, h.engine.GetHistory(skip, take), http.StatusOK)
}

func (h *APIHandler) ListProcessorsHandler(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, h.catalog.Descriptors(), http.StatusOK)
}

func (h *APIHandler) ToggleRuleStatusHandler(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.Atoi(chi.URLParam(r, "ruleId"))
	if err != nil {
		h.sendError(w, "Rule id must be an integer", http.StatusBadRequest, "INVALID_RULE_ID")
		return
	}

	isActive, err := strconv.ParseBool(r.URL.Query().Get("isActive"))
	if err != nil {
		h.sendError(w, "isActive query parameter is required", http.StatusBadRequest, "INVALID_STATUS")
		return
	}

	if !h.catalog.SetActive(ruleID, isActive) {
		h.sendError(w, "Rule processor not found", http.StatusNotFound, "NOT_FOUND")
		return
	}

	action := "deactivated"
	if isActive {
		action = "activated"
	}
	h.sendJSON(w, map[string]string{
		"message": "Rule processor " + strconv.Itoa(ruleID) + " " + action + " successfully",
	}, http.StatusOK)
}

func (h *APIHandler) GenerateTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	count := parseIntDefault(r.URL.Query().Get("count"), 10)
	if count <= 0 || count > maxGeneratedTransactions {
		h.sendError(w, "Count must be between 1 and 1000", http.StatusBadRequest, "INVALID_COUNT")
		return
	}

	h.sendJSON(w, h.generator.Transactions(count), http.StatusOK)
}

func (h *APIHandler) GenerateScenariosHandler(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, h.generator.Scenarios(), http.StatusOK)
}

func (h *APIHandler) GeneratePerformanceBatchHandler(w http.ResponseWriter, r *http.Request) {
	size := parseIntDefault(r.URL.Query().Get("size"), 1000)
	if size <= 0 || size > maxGeneratedBatchSize {
		h.sendError(w, "Size must be between 1 and 10000", http.StatusBadRequest, "INVALID_SIZE")
		return
	}

	h.sendJSON(w, h.generator.PerformanceBatch(size), http.StatusOK)
}

func (h *APIHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	}
	h.sendJSON(w, response, http.StatusOK)
}

func (h *APIHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", slog.String("error", err.Error()))
	}
}

func (h *APIHandler) sendError(w http.ResponseWriter, message string, statusCode int, code string) {
	h.sendJSON(w, ErrorResponse{Error: message, Code: code}, statusCode)

	h.logger.Warn("API error response",
		slog.String("message", message),
		slog.String("code", code),
		slog.Int("status", statusCode))
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
