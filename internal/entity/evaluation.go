package entity

// SubmissionItem is a single answered question inside a submission.
type SubmissionItem struct {
	QuestionID     string `json:"question_id"`
	Question       string `json:"question"`
	ActualAnswer   string `json:"actual_answer"`
	ExpectedAnswer string `json:"expected_answer"`
}

// Submission is the payload for /evaluate and /swot.
type Submission struct {
	Items []SubmissionItem `json:"items"`
}

// ScoreDetail is the per-question result of an evaluation.
// Score is always within [0, 10] after normalization.
type ScoreDetail struct {
	QuestionID string  `json:"question_id"`
	Question   string  `json:"question"`
	Score      float64 `json:"score"`
	Correct    bool    `json:"correct"`
	Feedback   string  `json:"feedback"`
}

// ScoreResponse carries one ScoreDetail per submission item, in input
// order, with TotalScore equal to the sum of the detail scores.
type ScoreResponse struct {
	TotalScore float64       `json:"total_score"`
	Details    []ScoreDetail `json:"details"`
}

// SWOTResponse is a narrative analysis of a whole submission.
type SWOTResponse struct {
	Strengths     string `json:"strengths"`
	Weaknesses    string `json:"weaknesses"`
	Opportunities string `json:"opportunities"`
	Threats       string `json:"threats"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
