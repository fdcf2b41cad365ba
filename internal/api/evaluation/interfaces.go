package evaluation

import (
	"context"

	"github.com/gradewise/eval-backend/internal/entity"
)

type EvaluationUsecase interface {
	EvaluateSubmission(ctx context.Context, req *entity.Submission) (*entity.ScoreResponse, error)
	AnalyzeSWOT(ctx context.Context, req *entity.Submission) (*entity.SWOTResponse, error)
}
