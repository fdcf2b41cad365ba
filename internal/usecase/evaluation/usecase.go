package evaluation

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

// EvaluationUsecase implements submission grading and SWOT analysis
type EvaluationUsecase struct {
	llmConnector LLMConnector
	retryOpts    []retry.Option
	logger       *zap.Logger
}

// NewUsecase creates a new evaluation use case
func NewUsecase(llmConnector LLMConnector, retryCfg pkgRetry.RetryConfig, logger *zap.Logger) *EvaluationUsecase {
	return &EvaluationUsecase{
		llmConnector: llmConnector,
		retryOpts:    retryCfg.ToRetryOptions(),
		logger:       logger,
	}
}

// EvaluateSubmission grades every submitted answer in one model call.
// Content problems in the reply degrade per item and never fail the request.
func (uc *EvaluationUsecase) EvaluateSubmission(ctx context.Context, req *entity.Submission) (*entity.ScoreResponse, error) {
	raw, err := uc.generate(ctx, prompt.Evaluation(req.Items))
	if err != nil {
		return nil, fmt.Errorf("evaluate submission: %w", err)
	}

	resp, report := normalize.ScoreResponse(raw, req.Items)
	logReport(ctx, "evaluation", report)

	ctxzap.Info(ctx, "submission evaluated", zap.Float64("total_score", resp.TotalScore))

	return resp, nil
}

// AnalyzeSWOT produces one overall performance analysis for the submission.
func (uc *EvaluationUsecase) AnalyzeSWOT(ctx context.Context, req *entity.Submission) (*entity.SWOTResponse, error) {
	raw, err := uc.generate(ctx, prompt.SWOT(req.Items))
	if err != nil {
		return nil, fmt.Errorf("analyze swot: %w", err)
	}

	resp, report := normalize.SWOTResponse(raw)
	logReport(ctx, "swot", report)

	ctxzap.Info(ctx, "swot analysis completed")

	return resp, nil
}

// generate calls the model within the configured retry budget.
func (uc *EvaluationUsecase) generate(ctx context.Context, promptText string) (string, error) {
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
