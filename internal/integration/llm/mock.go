package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector produces deterministic replies without a provider,
// keyed off markers in the prompt text. Enabled via ENABLE_MOCKS.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

var (
	questionIDPattern    = regexp.MustCompile(`\[question_id: ([^\]]+)\]`)
	questionCountPattern = regexp.MustCompile(`Generate exactly (\d+) questions`)
)

func (m *MockConnector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating model reply", zap.Int("prompt_length", len(prompt)))

	switch {
	case strings.Contains(prompt, "SWOT"):
		return mockSWOTReply, nil
	case strings.Contains(prompt, "alternative questions"):
		return mockAlternativesReply, nil
	case strings.Contains(prompt, "preparing a test"):
		return mockQuestionsReply(prompt), nil
	case strings.Contains(prompt, "grading"):
		return mockEvaluationReply(prompt), nil
	}

	ctxzap.Warn(ctx, "[MOCK] unrecognized prompt")
	return "{}", nil
}

const mockSWOTReply = `{
	"strengths": "You show a solid grasp of the core definitions and your answers are easy to follow.",
	"weaknesses": "Several answers stop at the definition and skip the explanation behind it.",
	"opportunities": "Working through past papers and explaining answers aloud would deepen your understanding.",
	"threats": "Relying on memorised phrasing may leave you stuck when a question is worded differently."
}`

const mockAlternativesReply = `[
	{"question": "Explain the main concept in your own words and give one everyday example.", "expected_answer": "A correct restatement of the concept supported by a fitting example."},
	{"question": "Compare the concept with a closely related one and name one key difference.", "expected_answer": "A comparison that names the shared idea and one clear distinction."},
	{"question": "Describe a situation where applying the concept would fail and explain why.", "expected_answer": "A boundary case with a short explanation of why the concept does not apply."}
]`

// mockEvaluationReply echoes each question_id found in the prompt so the
// reply matches the submission it was built from.
func mockEvaluationReply(prompt string) string {
	type detail struct {
		QuestionID string  `json:"question_id"`
		Score      float64 `json:"score"`
		Correct    bool    `json:"correct"`
		Feedback   string  `json:"feedback"`
	}

	matches := questionIDPattern.FindAllStringSubmatch(prompt, -1)
	details := make([]detail, 0, len(matches))
	for _, m := range matches {
		details = append(details, detail{
			QuestionID: m[1],
			Score:      8,
			Correct:    true,
			Feedback:   "You covered the key points well. Next time add a concrete example to make the answer complete.",
		})
	}

	b, err := json.Marshal(details)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// mockQuestionsReply honors the question count stated in the prompt.
func mockQuestionsReply(prompt string) string {
	type question struct {
		Question       string `json:"question"`
		ExpectedAnswer string `json:"expected_answer"`
	}

	count := 3
	if m := questionCountPattern.FindStringSubmatch(prompt); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			count = n
		}
	}

	questions := make([]question, 0, count)
	for i := 1; i <= count; i++ {
		questions = append(questions, question{
			Question:       fmt.Sprintf("Sample question %d: explain one key idea from the listed topics in your own words.", i),
			ExpectedAnswer: fmt.Sprintf("A clear explanation of key idea %d, stated in the student's own words with an example.", i),
		})
	}

	b, err := json.Marshal(questions)
	if err != nil {
		return "[]"
	}
	return string(b)
}
