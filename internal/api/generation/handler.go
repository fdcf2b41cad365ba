package generation

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
	usecase   GenerationUsecase
	validator *validator.Validator
}

func NewHandler(usecase GenerationUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// GenerateQuestions handles POST /generate-qa - Generate test questions
func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateQuestions")

	var req entity.QuestionGenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusUnprocessableEntity, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateQuestionGeneration(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		h.respondError(ctx, w, http.StatusUnprocessableEntity, err.Error(), err)
		return
	}

	ctx = logger.AddFields(ctx,
		zap.String("subject", req.Subject),
		zap.Int("count", req.Count),
	)
	ctxzap.Info(ctx, "generating questions")

	resp, err := h.usecase.GenerateQuestions(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// GenerateAlternatives handles POST /generate-alternatives - Generate
// three replacement questions for one slot
func (h *Handler) GenerateAlternatives(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateAlternatives")

	var req entity.AlternativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusUnprocessableEntity, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateAlternative(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		h.respondError(ctx, w, http.StatusUnprocessableEntity, err.Error(), err)
		return
	}

	ctx = logger.AddFields(ctx,
		zap.String("slot_id", req.ID),
		zap.String("subtopic", req.Subtopic),
	)
	ctxzap.Info(ctx, "generating alternatives")

	alts, err := h.usecase.GenerateAlternatives(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, alts)
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
