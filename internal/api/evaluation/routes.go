package evaluation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers evaluation routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/evaluate", h.Evaluate)
	r.Post("/swot", h.AnalyzeSWOT)
}
