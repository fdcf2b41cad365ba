package generation

import (
	"context"

	"github.com/gradewise/eval-backend/internal/entity"
)

// GenerationUsecase describes question generation operations
type GenerationUsecase interface {
	GenerateQuestions(ctx context.Context, req *entity.QuestionGenerationRequest) (*entity.QuestionGenerationResponse, error)
	GenerateAlternatives(ctx context.Context, req *entity.AlternativeRequest) ([]entity.AlternativeQuestion, error)
}
