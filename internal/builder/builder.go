package builder

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/gradewise/eval-backend/internal/api"
	evaluationapi "github.com/gradewise/eval-backend/internal/api/evaluation"
	generationapi "github.com/gradewise/eval-backend/internal/api/generation"
	"github.com/gradewise/eval-backend/internal/config"
	"github.com/gradewise/eval-backend/internal/integration/llm"
	"github.com/gradewise/eval-backend/internal/pkg/validator"
	"github.com/gradewise/eval-backend/internal/usecase/evaluation"
	"github.com/gradewise/eval-backend/internal/usecase/generation"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Initialize the LLM connector (with mock support)
	var llmConnector evaluation.LLMConnector
	if cfg.EnableMocks {
		logger.Info("Using mock connector for the LLM service")
		llmConnector = llm.NewMockConnector(logger)
	} else {
		logger.Info("Using real connector for the LLM service",
			zap.String("model", cfg.LLMCfg.Model),
		)
		llmConnector = llm.NewConnector(cfg.LLMCfg, logger)
	}

	// Initialize validators
	requestValidator := validator.New(cfg.LimitsCfg)
	logger.Info("Validators initialized")

	// Initialize use cases
	evaluationUC := evaluation.NewUsecase(llmConnector, cfg.LLMCfg.Retry, logger)
	generationUC := generation.NewUsecase(llmConnector, cfg.LLMCfg.Retry, logger)
	logger.Info("Use cases initialized")

	// Setup API handlers
	evaluationHandler := evaluationapi.NewHandler(evaluationUC, requestValidator)
	generationHandler := generationapi.NewHandler(generationUC, requestValidator)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(evaluationHandler, generationHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server. The write timeout must outlast the router's
	// request timeout: responses wait on synchronous model calls.
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}
