package normalize

import (
	"strings"

	"github.com/gradewise/eval-backend/internal/entity"
)

const (
	// AlternativeCount is the fixed number of alternative questions
	// returned for a slot.
	AlternativeCount = 3

	fallbackAlternative = "Unable to generate alternative question"
)

// Questions shapes a model question-generation reply, echoing the request
// metadata. Extra questions beyond the requested count are dropped; a
// shortfall is kept as-is and reported.
func Questions(raw string, req *entity.QuestionGenerationRequest) (*entity.QuestionGenerationResponse, *Report) {
	report := &Report{}
	entries := decodeEntries(raw, report)

	questions := make([]entity.GeneratedQuestion, 0, len(entries))
	for _, e := range entries {
		q, ok := questionFromEntry(e)
		if !ok {
			report.note("dropped entry without question text")
			continue
		}
		questions = append(questions, q)
	}

	if req.Count > 0 && len(questions) > req.Count {
		report.note("model returned %d questions, truncated to %d", len(questions), req.Count)
		questions = questions[:req.Count]
	}
	if len(questions) < req.Count {
		report.note("model returned %d of %d requested questions", len(questions), req.Count)
	}

	return &entity.QuestionGenerationResponse{
		TestTitle:  req.Title,
		Subject:    req.Subject,
		ClassLevel: req.ClassLevel,
		Questions:  questions,
	}, report
}

// Alternatives shapes a model reply into exactly AlternativeCount
// alternative questions, truncating extras and padding a shortfall with
// placeholders.
func Alternatives(raw string) ([]entity.AlternativeQuestion, *Report) {
	report := &Report{}
	entries := decodeEntries(raw, report)

	alts := make([]entity.AlternativeQuestion, 0, AlternativeCount)
	for _, e := range entries {
		q, ok := questionFromEntry(e)
		if !ok {
			report.note("dropped entry without question text")
			continue
		}
		alts = append(alts, entity.AlternativeQuestion{
			Question:       q.Question,
			ExpectedAnswer: q.ExpectedAnswer,
		})
	}

	if len(alts) > AlternativeCount {
		report.note("model returned %d alternatives, truncated to %d", len(alts), AlternativeCount)
		alts = alts[:AlternativeCount]
	}
	if len(alts) < AlternativeCount {
		report.Fallbacks += AlternativeCount - len(alts)
		report.note("model returned %d of %d alternatives, padded", len(alts), AlternativeCount)
		for len(alts) < AlternativeCount {
			alts = append(alts, entity.AlternativeQuestion{Question: fallbackAlternative})
		}
	}

	return alts, report
}

func questionFromEntry(entry map[string]any) (entity.GeneratedQuestion, bool) {
	rawQuestion, _ := pick(entry, "question", "text")
	question := strings.TrimSpace(coerceString(rawQuestion))
	if question == "" {
		return entity.GeneratedQuestion{}, false
	}

	rawAnswer, _ := pick(entry, "expected_answer", "answer")

	return entity.GeneratedQuestion{
		Question:       question,
		ExpectedAnswer: strings.TrimSpace(coerceString(rawAnswer)),
	}, true
}
