package entity

// QuestionGenerationRequest describes the test to generate questions for.
type QuestionGenerationRequest struct {
	Title        string   `json:"title"`
	Subject      string   `json:"subject"`
	ClassLevel   string   `json:"class_level"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	QuestionType string   `json:"question_type"`
	Count        int      `json:"count"`
	Difficulty   string   `json:"difficulty"`
	Topics       []string `json:"topics"`
	Instructions string   `json:"instructions"`
	Description  string   `json:"description"`
	MaxScore     int      `json:"max_score"`
	PassingScore int      `json:"passing_score"`
}

type GeneratedQuestion struct {
	Question       string `json:"question"`
	ExpectedAnswer string `json:"expected_answer"`
}

// QuestionGenerationResponse echoes the test metadata and carries the
// generated questions, at most Count of them.
type QuestionGenerationResponse struct {
	TestTitle  string              `json:"test_title"`
	Subject    string              `json:"subject"`
	ClassLevel string              `json:"class_level"`
	Questions  []GeneratedQuestion `json:"questions"`
}

// AlternativeRequest asks for replacement questions for a single slot.
type AlternativeRequest struct {
	ID         string `json:"id"`
	Subtopic   string `json:"subtopic"`
	Difficulty string `json:"difficulty"`
	Marks      int    `json:"marks"`
}

// AlternativeQuestion is one of the exactly three alternatives returned
// by /generate-alternatives.
type AlternativeQuestion struct {
	Question       string `json:"question"`
	ExpectedAnswer string `json:"expected_answer"`
}
