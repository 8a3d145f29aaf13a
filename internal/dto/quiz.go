package dto

// GenerateQuizRequest is the request body for quiz generation.
// @Description Parameters for one quiz generation call
type GenerateQuizRequest struct {
	Type          string `json:"type"`
	Topic         string `json:"topic,omitempty"`
	CourseID      string `json:"courseId,omitempty"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"questionCount"`
}

// QuizQuestionResponse is one generated question in the API response.
type QuizQuestionResponse struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// GenerateQuizResponse is the successful generation payload.
type GenerateQuizResponse struct {
	Questions []QuizQuestionResponse `json:"questions"`
}

// SubmitQuizRequest persists a finalized quiz session.
type SubmitQuizRequest struct {
	Title          string                 `json:"title"`
	Type           string                 `json:"type"`
	CourseID       string                 `json:"courseId,omitempty"`
	Topic          string                 `json:"topic,omitempty"`
	Questions      []QuizQuestionResponse `json:"questions"`
	Answers        []int                  `json:"answers"`
	ElapsedSeconds int                    `json:"elapsedSeconds"`
}

// SubmitQuizResponse reports the computed score.
type SubmitQuizResponse struct {
	ID             string  `json:"id"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"totalQuestions"`
	Percentage     float64 `json:"percentage"`
}

// QuizRecordResponse is one history entry.
type QuizRecordResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Type           string `json:"type"`
	CourseID       string `json:"courseId,omitempty"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	ElapsedSeconds int    `json:"elapsedSeconds"`
	CompletedAt    string `json:"completedAt"`
}

// QuizHistoryResponse lists a user's finalized quizzes.
type QuizHistoryResponse struct {
	Quizzes []QuizRecordResponse `json:"quizzes"`
}

// ErrorResponse represents an error in the API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
