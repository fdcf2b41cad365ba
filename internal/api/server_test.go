package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	evaluationapi "github.com/gradewise/eval-backend/internal/api/evaluation"
	generationapi "github.com/gradewise/eval-backend/internal/api/generation"
	"github.com/gradewise/eval-backend/internal/config"
	"github.com/gradewise/eval-backend/internal/pkg/validator"
)

func newRouter() http.Handler {
	v := validator.New(config.LimitsConfig{MaxSubmissionItems: 10, MaxQuestionCount: 10})
	return SetupRouter(
		evaluationapi.NewHandler(nil, v),
		generationapi.NewHandler(nil, v),
		zap.NewNop(),
	)
}

func TestHealthCheck(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/health-check", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != `{"status":"ok"}` {
		t.Errorf("body = %q, want {\"status\":\"ok\"}", got)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}
}

func TestRouterAssignsRequestID(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/health-check", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("no X-Request-ID on the response")
	}
}

func TestRouterRejectsInvalidSubmission(t *testing.T) {
	// The handler wiring is live end to end: validation fires before
	// the usecase, so a nil usecase never gets called.
	router := newRouter()

	req := httptest.NewRequest(http.MethodPost, "/evaluate", strings.NewReader(`{"items": []}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
