package prompt

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gradewise/eval-backend/internal/entity"
)

// Builders in this package are pure: the same input always produces the
// same prompt text, and validation is assumed to have happened upstream.

const (
	// maxFieldRunes caps free-text fields interpolated into prompts.
	maxFieldRunes = 4000

	noAnswerPlaceholder = "[No answer provided]"

	noMarkdownReminder = "Do not wrap the JSON in markdown fences and do not add any text outside the JSON."
)

var (
	fenceRegex   = regexp.MustCompile("`{3,}")
	controlRegex = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
)

// Evaluation builds the grading prompt for a submission. The model is
// asked to echo each item's question_id so replies can be matched back
// even if it reorders them.
func Evaluation(items []entity.SubmissionItem) string {
	var sb strings.Builder

	sb.WriteString("You are an experienced teacher grading a student's written test.\n\n")
	sb.WriteString("Evaluate every response below. For each one:\n")
	sb.WriteString("- Assign a score from 0 to 10 based on accuracy, completeness, and clarity.\n")
	sb.WriteString("- Decide whether the answer is correct (true) or incorrect (false).\n")
	sb.WriteString("- Write constructive, personalised feedback: point out what works, what is wrong or missing, ")
	sb.WriteString("and how to improve. Address the student directly and keep the tone natural and encouraging.\n\n")
	sb.WriteString("Return ONLY a JSON array with one object per response, in the same order, ")
	sb.WriteString("with exactly these fields:\n")
	sb.WriteString("[\n  {\"question_id\": \"<id copied from the response>\", \"question\": \"<the question text>\", ")
	sb.WriteString("\"score\": 0, \"correct\": true, \"feedback\": \"...\"}\n]\n")
	sb.WriteString(noMarkdownReminder)
	sb.WriteString("\n\nResponses to evaluate:\n\n")

	for i, item := range items {
		answer := sanitize(item.ActualAnswer)
		if answer == "" {
			answer = noAnswerPlaceholder
		}

		sb.WriteString(fmt.Sprintf("%d. [question_id: %s]\n", i+1, sanitize(item.QuestionID)))
		sb.WriteString("Question: " + sanitize(item.Question) + "\n")
		sb.WriteString("Student Answer: " + answer + "\n")
		sb.WriteString("Expected Answer: " + sanitize(item.ExpectedAnswer) + "\n\n")
	}

	return sb.String()
}

// SWOT builds the prompt for one overall SWOT analysis of a submission.
func SWOT(items []entity.SubmissionItem) string {
	var sb strings.Builder

	sb.WriteString("You are an educational expert analysing a student's overall test performance.\n\n")
	sb.WriteString("Review the answered questions below and produce ONE overall SWOT analysis of the ")
	sb.WriteString("student's performance across the whole test, not per question:\n")
	sb.WriteString("- strengths: where the student shows solid understanding or skill; describe the general patterns with examples.\n")
	sb.WriteString("- weaknesses: recurring mistakes, gaps, or misunderstandings across the answers.\n")
	sb.WriteString("- opportunities: concrete strategies, resources, or habits that would improve the results.\n")
	sb.WriteString("- threats: misconceptions, bad habits, or risks that could hold the student back.\n\n")
	sb.WriteString("Write naturally, as a real mentor would, and address the student as \"you\".\n\n")
	sb.WriteString("Return ONLY a single JSON object with exactly these four string keys:\n")
	sb.WriteString("{\"strengths\": \"...\", \"weaknesses\": \"...\", \"opportunities\": \"...\", \"threats\": \"...\"}\n")
	sb.WriteString(noMarkdownReminder)
	sb.WriteString("\n\nAnswered questions:\n\n")

	for _, item := range items {
		answer := sanitize(item.ActualAnswer)
		if answer == "" {
			answer = noAnswerPlaceholder
		}

		sb.WriteString("Question: " + sanitize(item.Question) + "\n")
		sb.WriteString("Student Answer: " + answer + "\n")
		sb.WriteString("Expected Answer: " + sanitize(item.ExpectedAnswer) + "\n\n")
	}

	return sb.String()
}

// QuestionGeneration builds the prompt for generating test questions.
func QuestionGeneration(req *entity.QuestionGenerationRequest) string {
	var sb strings.Builder

	sb.WriteString("You are a highly experienced school teacher preparing a test.\n\n")
	sb.WriteString("Test details:\n")

	if req.Title != "" {
		sb.WriteString("- Title: " + sanitize(req.Title) + "\n")
	}
	sb.WriteString("- Subject: " + sanitize(req.Subject) + "\n")
	if req.ClassLevel != "" {
		sb.WriteString("- Class level: " + sanitize(req.ClassLevel) + "\n")
	}
	if req.StartDate != "" || req.EndDate != "" {
		sb.WriteString("- Test window: " + sanitize(req.StartDate) + " to " + sanitize(req.EndDate) + "\n")
	}
	if req.QuestionType != "" {
		sb.WriteString("- Question type: " + sanitize(req.QuestionType) + "\n")
	}
	if req.Difficulty != "" {
		sb.WriteString("- Difficulty: " + sanitize(req.Difficulty) + "\n")
	}
	sb.WriteString("- Topics: " + sanitize(strings.Join(req.Topics, ", ")) + "\n")
	if req.MaxScore > 0 {
		sb.WriteString(fmt.Sprintf("- Maximum score: %d", req.MaxScore))
		if req.PassingScore > 0 {
			sb.WriteString(fmt.Sprintf(" (passing score %d)", req.PassingScore))
		}
		sb.WriteString("\n")
	}
	if req.Description != "" {
		sb.WriteString("- Description: " + sanitize(req.Description) + "\n")
	}

	sb.WriteString(fmt.Sprintf("\nGenerate exactly %d questions covering the topics above. The questions must:\n", req.Count))
	sb.WriteString("- Be clear and age-appropriate for the class level.\n")
	sb.WriteString("- Not repeat the same concept.\n")
	if req.Instructions != "" {
		sb.WriteString("- Follow these instructions: " + sanitize(req.Instructions) + "\n")
	}

	sb.WriteString("\nFor each question, state the correct answer clearly. ")
	sb.WriteString("Return ONLY a JSON array with exactly these fields per question:\n")
	sb.WriteString("[\n  {\"question\": \"...\", \"expected_answer\": \"...\"}\n]\n")
	sb.WriteString(noMarkdownReminder)
	sb.WriteString("\n")

	return sb.String()
}

// Alternatives builds the prompt for exactly three replacement questions
// for a single question slot.
func Alternatives(req *entity.AlternativeRequest) string {
	var sb strings.Builder

	sb.WriteString("You are a school teacher revising a test. One question slot needs replacement options.\n\n")
	sb.WriteString("Slot details:\n")
	sb.WriteString("- Subtopic: " + sanitize(req.Subtopic) + "\n")
	if req.Difficulty != "" {
		sb.WriteString("- Difficulty: " + sanitize(req.Difficulty) + "\n")
	}
	sb.WriteString(fmt.Sprintf("- Marks: %d\n", req.Marks))

	sb.WriteString("\nGenerate EXACTLY 3 alternative questions for this slot. Each must:\n")
	sb.WriteString("- Test the same subtopic at the stated difficulty.\n")
	sb.WriteString("- Be answerable in a written test for the stated marks.\n")
	sb.WriteString("- Differ meaningfully from the other two.\n\n")
	sb.WriteString("Return ONLY a JSON array of exactly 3 objects with these fields:\n")
	sb.WriteString("[\n  {\"question\": \"...\", \"expected_answer\": \"...\"}\n]\n")
	sb.WriteString(noMarkdownReminder)
	sb.WriteString("\n")

	return sb.String()
}

// sanitize neutralizes text that could break the prompt structure:
// markdown fences, control characters, and unbounded length.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = controlRegex.ReplaceAllString(s, "")
	s = fenceRegex.ReplaceAllString(s, "'''")
	s = strings.TrimSpace(s)

	if utf8.RuneCountInString(s) > maxFieldRunes {
		runes := []rune(s)
		s = string(runes[:maxFieldRunes]) + " [truncated]"
	}

	return s
}
