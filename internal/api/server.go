package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/gradewise/eval-backend/internal/api/docs"
	evaluationapi "github.com/gradewise/eval-backend/internal/api/evaluation"
	generationapi "github.com/gradewise/eval-backend/internal/api/generation"
	"github.com/gradewise/eval-backend/internal/api/middleware"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(evaluationHandler *evaluationapi.Handler, generationHandler *generationapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                  // Recover from panics
	r.Use(middleware.RequestID)                     // Add request ID
	r.Use(middleware.Logger(logger))                // Log requests
	r.Use(middleware.CORS)                          // Handle CORS
	r.Use(chimiddleware.Timeout(150 * time.Second)) // Covers a full retry cycle against the model

	// Health check endpoint
	r.Get("/health-check", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	evaluationapi.RegisterRoutes(r, evaluationHandler)
	generationapi.RegisterRoutes(r, generationHandler)

	return r
}
