package evaluation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/gradewise/eval-backend/internal/entity"
	pkgRetry "github.com/gradewise/eval-backend/internal/pkg/retry"
)

type fakeConnector struct {
	reply    string
	failures int
	calls    int
	prompts  []string
}

func (f *fakeConnector) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.calls <= f.failures {
		return "", fmt.Errorf("%w: provider status 500", entity.ErrLLMUnavailable)
	}
	return f.reply, nil
}

func testRetryConfig() pkgRetry.RetryConfig {
	return pkgRetry.RetryConfig{
		Attempts: 2,
		Delay:    time.Millisecond,
		MaxDelay: 2 * time.Millisecond,
	}
}

func submission() *entity.Submission {
	return &entity.Submission{
		Items: []entity.SubmissionItem{
			{
				QuestionID:     "q1",
				Question:       "What is osmosis?",
				ActualAnswer:   "Water moves through a membrane.",
				ExpectedAnswer: "Movement of water across a semipermeable membrane.",
			},
		},
	}
}

func TestEvaluateSubmission(t *testing.T) {
	connector := &fakeConnector{
		reply: `[{"question_id": "q1", "score": 8.5, "correct": true, "feedback": "Nicely put."}]`,
	}
	uc := NewUsecase(connector, testRetryConfig(), zap.NewNop())

	resp, err := uc.EvaluateSubmission(context.Background(), submission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.TotalScore != 8.5 {
		t.Errorf("total = %v, want 8.5", resp.TotalScore)
	}
	if len(resp.Details) != 1 || resp.Details[0].Feedback != "Nicely put." {
		t.Errorf("details = %+v", resp.Details)
	}
	if connector.calls != 1 {
		t.Errorf("calls = %d, want 1", connector.calls)
	}
	if !strings.Contains(connector.prompts[0], "What is osmosis?") {
		t.Error("prompt does not carry the submitted question")
	}
}

func TestEvaluateSubmissionRetriesOnce(t *testing.T) {
	connector := &fakeConnector{
		failures: 1,
		reply:    `[{"question_id": "q1", "score": 6, "correct": true, "feedback": "ok"}]`,
	}
	uc := NewUsecase(connector, testRetryConfig(), zap.NewNop())

	resp, err := uc.EvaluateSubmission(context.Background(), submission())
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if resp.TotalScore != 6 {
		t.Errorf("total = %v, want 6", resp.TotalScore)
	}
	if connector.calls != 2 {
		t.Errorf("calls = %d, want 2", connector.calls)
	}
}

func TestEvaluateSubmissionUpstreamFailure(t *testing.T) {
	connector := &fakeConnector{failures: 10}
	uc := NewUsecase(connector, testRetryConfig(), zap.NewNop())

	_, err := uc.EvaluateSubmission(context.Background(), submission())
	if !errors.Is(err, entity.ErrLLMUnavailable) {
		t.Fatalf("err = %v, want ErrLLMUnavailable", err)
	}
	if connector.calls != 2 {
		t.Errorf("calls = %d, want 2 (retry budget exhausted)", connector.calls)
	}
}

func TestEvaluateSubmissionDegradedReply(t *testing.T) {
	connector := &fakeConnector{reply: "the model rambled instead of returning JSON"}
	uc := NewUsecase(connector, testRetryConfig(), zap.NewNop())

	resp, err := uc.EvaluateSubmission(context.Background(), submission())
	if err != nil {
		t.Fatalf("content problems must not become errors, got: %v", err)
	}
	if len(resp.Details) != 1 {
		t.Fatalf("got %d details, want 1", len(resp.Details))
	}
	if resp.Details[0].Score != 0 || resp.Details[0].Correct {
		t.Errorf("detail = %+v, want zero-score fallback", resp.Details[0])
	}
	if connector.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry for content problems)", connector.calls)
	}
}

func TestAnalyzeSWOT(t *testing.T) {
	connector := &fakeConnector{
		reply: `{"strengths": "s", "weaknesses": "w", "opportunities": "o", "threats": "t"}`,
	}
	uc := NewUsecase(connector, testRetryConfig(), zap.NewNop())

	resp, err := uc.AnalyzeSWOT(context.Background(), submission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Strengths != "s" || resp.Threats != "t" {
		t.Errorf("resp = %+v", resp)
	}
	if !strings.Contains(connector.prompts[0], "SWOT") {
		t.Error("prompt does not ask for a SWOT analysis")
	}
}

func TestAnalyzeSWOTUpstreamFailure(t *testing.T) {
	connector := &fakeConnector{failures: 10}
	uc := NewUsecase(connector, testRetryConfig(), zap.NewNop())

	_, err := uc.AnalyzeSWOT(context.Background(), submission())
	if !errors.Is(err, entity.ErrLLMUnavailable) {
		t.Fatalf("err = %v, want ErrLLMUnavailable", err)
	}
}
