package generation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes sets up question generation endpoints
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/generate-qa", h.GenerateQuestions)
	r.Post("/generate-alternatives", h.GenerateAlternatives)
}
