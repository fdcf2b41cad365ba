package validator

import (
	"fmt"
	"strings"

	"github.com/gradewise/eval-backend/internal/config"
	"github.com/gradewise/eval-backend/internal/entity"
)

// Validator validates inbound request payloads
type Validator struct {
	cfg config.LimitsConfig
}

func New(cfg config.LimitsConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateSubmission checks a submission before any prompt is built or
// any LLM call is made.
func (v *Validator) ValidateSubmission(sub *entity.Submission) error {
	if len(sub.Items) == 0 {
		return fmt.Errorf("%w: items", entity.ErrEmptyItems)
	}

	if len(sub.Items) > v.cfg.MaxSubmissionItems {
		return fmt.Errorf("%w: got %d items (max %d)", entity.ErrTooManyItems, len(sub.Items), v.cfg.MaxSubmissionItems)
	}

	for i, item := range sub.Items {
		if strings.TrimSpace(item.QuestionID) == "" {
			return fmt.Errorf("%w: items[%d].question_id", entity.ErrMissingField, i)
		}
		if strings.TrimSpace(item.Question) == "" {
			return fmt.Errorf("%w: items[%d].question", entity.ErrMissingField, i)
		}
	}

	return nil
}

// ValidateQuestionGeneration checks a generation request and normalizes
// its topics into a trimmed, de-duplicated set.
func (v *Validator) ValidateQuestionGeneration(req *entity.QuestionGenerationRequest) error {
	if req.Count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", entity.ErrInvalidParameter, req.Count)
	}

	if req.Count > v.cfg.MaxQuestionCount {
		return fmt.Errorf("%w: count %d exceeds the maximum of %d", entity.ErrInvalidParameter, req.Count, v.cfg.MaxQuestionCount)
	}

	if strings.TrimSpace(req.Subject) == "" {
		return fmt.Errorf("%w: subject", entity.ErrMissingField)
	}

	req.Topics = dedupeTopics(req.Topics)
	if len(req.Topics) == 0 {
		return fmt.Errorf("%w: topics", entity.ErrMissingField)
	}

	return nil
}

// ValidateAlternative checks an alternative-questions request.
func (v *Validator) ValidateAlternative(req *entity.AlternativeRequest) error {
	if strings.TrimSpace(req.Subtopic) == "" {
		return fmt.Errorf("%w: subtopic", entity.ErrMissingField)
	}

	if req.Marks <= 0 {
		return fmt.Errorf("%w: marks must be positive, got %d", entity.ErrInvalidParameter, req.Marks)
	}

	return nil
}

func dedupeTopics(topics []string) []string {
	seen := make(map[string]bool, len(topics))
	out := make([]string, 0, len(topics))

	for _, t := range topics {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}

	return out
}
