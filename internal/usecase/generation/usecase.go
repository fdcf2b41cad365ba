package generation

import (
	"context"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/gradewise/eval-backend/internal/entity"
	"github.com/gradewise/eval-backend/internal/pkg/normalize"
	"github.com/gradewise/eval-backend/internal/pkg/prompt"
	pkgRetry "github.com/gradewise/eval-backend/internal/pkg/retry"
)

// GenerationUsecase implements test question and alternative generation
type GenerationUsecase struct {
	llmConnector LLMConnector
	retryOpts    []retry.Option
	logger       *zap.Logger
}

// NewUsecase creates a new generation use case
func NewUsecase(llmConnector LLMConnector, retryCfg pkgRetry.RetryConfig, logger *zap.Logger) *GenerationUsecase {
	return &GenerationUsecase{
		llmConnector: llmConnector,
		retryOpts:    retryCfg.ToRetryOptions(),
		logger:       logger,
	}
}

// GenerateQuestions produces a set of test questions for the request and
// echoes the test metadata back with them.
func (uc *GenerationUsecase) GenerateQuestions(ctx context.Context, req *entity.QuestionGenerationRequest) (*entity.QuestionGenerationResponse, error) {
	raw, err := uc.generate(ctx, prompt.QuestionGeneration(req))
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	resp, report := normalize.Questions(raw, req)
	logReport(ctx, "question_generation", report)

	ctxzap.Info(ctx, "questions generated", zap.Int("returned", len(resp.Questions)))

	return resp, nil
}

// GenerateAlternatives produces exactly three replacement questions for
// one question slot.
func (uc *GenerationUsecase) GenerateAlternatives(ctx context.Context, req *entity.AlternativeRequest) ([]entity.AlternativeQuestion, error) {
	raw, err := uc.generate(ctx, prompt.Alternatives(req))
	if err != nil {
		return nil, fmt.Errorf("generate alternatives: %w", err)
	}

	alts, report := normalize.Alternatives(raw)
	logReport(ctx, "alternatives", report)

	ctxzap.Info(ctx, "alternatives generated")

	return alts, nil
}

// generate calls the model within the configured retry budget.
func (uc *GenerationUsecase) generate(ctx context.Context, promptText string) (string, error) {
	var raw string

	err := retry.Do(func() error {
		var genErr error
		raw, genErr = uc.llmConnector.Generate(ctx, promptText)
		return genErr
	}, append(uc.retryOpts, retry.Context(ctx))...)
	if err != nil {
		return "", err
	}

	return raw, nil
}
