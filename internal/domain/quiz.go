package domain

import "context"

// SubjectMode selects where the quiz topic comes from.
type SubjectMode string

const (
	SubjectModeGeneral SubjectMode = "general"
	SubjectModeCourse  SubjectMode = "course"
)

// Difficulty is one of the three prompt tiers.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// NormalizeDifficulty maps unknown or empty values to the intermediate tier.
func NormalizeDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return Difficulty(s)
	default:
		return DifficultyIntermediate
	}
}

const (
	MinQuestionCount   = 1
	MaxQuestionCount   = 50
	OptionsPerQuestion = 4
)

// QuizRequest describes one generation call.
type QuizRequest struct {
	SubjectMode   SubjectMode
	Topic         string
	CourseID      string
	Difficulty    Difficulty
	QuestionCount int
}

// Validate enforces the request invariants. The difficulty field is assumed
// to be normalized already.
func (r QuizRequest) Validate() error {
	if r.QuestionCount < MinQuestionCount || r.QuestionCount > MaxQuestionCount {
		return NewInvalidInputError("questionCount must be between 1 and 50")
	}
	switch r.SubjectMode {
	case SubjectModeGeneral:
		if r.Topic == "" {
			return NewInvalidInputError("topic is required for a general quiz")
		}
	case SubjectModeCourse:
		if r.CourseID == "" {
			return NewInvalidInputError("courseId is required for a course quiz")
		}
	default:
		return NewInvalidInputError("type must be \"general\" or \"course\"")
	}
	return nil
}

// QuizQuestion is one validated multiple-choice question. Options always has
// exactly four entries and CorrectIndex addresses one of them.
type QuizQuestion struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_answer"`
	Explanation  string   `json:"explanation"`
}

// QuizResult is the session-local state of a quiz being taken. It is created
// when generation succeeds, mutated as the learner answers, and finalized on
// submission. Persistence of a finalized result is owned elsewhere.
type QuizResult struct {
	Questions       []QuizQuestion
	SelectedAnswers []int
	ElapsedSeconds  int
}

// NewQuizResult starts a session with every question unanswered.
func NewQuizResult(questions []QuizQuestion) *QuizResult {
	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = -1
	}
	return &QuizResult{Questions: questions, SelectedAnswers: answers}
}

// Answer records the learner's choice for a question. Out-of-range input is
// ignored rather than panicking; the UI owns input bounds.
func (r *QuizResult) Answer(questionIndex, optionIndex int) {
	if questionIndex < 0 || questionIndex >= len(r.SelectedAnswers) {
		return
	}
	if optionIndex < 0 || optionIndex >= OptionsPerQuestion {
		return
	}
	r.SelectedAnswers[questionIndex] = optionIndex
}

// Score counts correctly answered questions.
func (r *QuizResult) Score() int {
	score := 0
	for i, q := range r.Questions {
		if i < len(r.SelectedAnswers) && r.SelectedAnswers[i] == q.CorrectIndex {
			score++
		}
	}
	return score
}

// QuestionGenerator is the port to the external generative-language API.
// Implementations submit the prompt and return the raw text reply; all
// parsing happens on the caller's side.
type QuestionGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
