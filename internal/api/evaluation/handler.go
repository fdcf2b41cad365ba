package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/gradewise/eval-backend/internal/entity"
	"github.com/gradewise/eval-backend/internal/pkg/logger"
	"github.com/gradewise/eval-backend/internal/pkg/validator"
)

type Handler struct {
	usecase   EvaluationUsecase
	validator *validator.Validator
}

func NewHandler(usecase EvaluationUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Evaluate handles POST /evaluate - Grade a submission
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Evaluate")

	var req entity.Submission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusUnprocessableEntity, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSubmission(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		h.respondError(ctx, w, http.StatusUnprocessableEntity, err.Error(), err)
		return
	}

	ctx = logger.AddFields(ctx, zap.Int("items", len(req.Items)))
	ctxzap.Info(ctx, "evaluating submission")

	resp, err := h.usecase.EvaluateSubmission(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// AnalyzeSWOT handles POST /swot - Analyze overall submission performance
func (h *Handler) AnalyzeSWOT(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AnalyzeSWOT")

	var req entity.Submission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusUnprocessableEntity, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSubmission(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		h.respondError(ctx, w, http.StatusUnprocessableEntity, err.Error(), err)
		return
	}

	ctx = logger.AddFields(ctx, zap.Int("items", len(req.Items)))
	ctxzap.Info(ctx, "analyzing submission")

	resp, err := h.usecase.AnalyzeSWOT(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// Helper methods
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	h.respondJSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrEmptyItems) || errors.Is(err, entity.ErrTooManyItems) ||
		errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidParameter) {
		h.respondError(ctx, w, http.StatusUnprocessableEntity, "validation failed", err)
	} else if errors.Is(err, entity.ErrLLMUnavailable) {
		h.respondError(ctx, w, http.StatusBadGateway, "llm service unavailable", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
