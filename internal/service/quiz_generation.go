package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"versora/internal/domain"
	"versora/internal/logger"
	"versora/internal/repository"
	"versora/internal/util"

	"go.uber.org/zap"
)

// QuizGenerationService turns a QuizRequest into a validated batch of
// multiple-choice questions sourced from the generative API.
type QuizGenerationService interface {
	Generate(ctx context.Context, req domain.QuizRequest) ([]domain.QuizQuestion, error)
}

type quizGenerationService struct {
	generator  domain.QuestionGenerator
	courseRepo repository.CourseRepository
}

// NewQuizGenerationService creates a new QuizGenerationService. The course
// repository resolves course-mode requests to a topic.
func NewQuizGenerationService(generator domain.QuestionGenerator, courseRepo repository.CourseRepository) QuizGenerationService {
	return &quizGenerationService{
		generator:  generator,
		courseRepo: courseRepo,
	}
}

// generatedQuestion is the wire shape the prompt demands from the model.
type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

func (s *quizGenerationService) Generate(ctx context.Context, req domain.QuizRequest) ([]domain.QuizQuestion, error) {
	l := logger.Get()

	req.Difficulty = domain.NormalizeDifficulty(string(req.Difficulty))
	if err := req.Validate(); err != nil {
		return nil, err
	}

	topic := req.Topic
	if req.SubjectMode == domain.SubjectModeCourse {
		course, err := s.courseRepo.GetByID(ctx, req.CourseID)
		if err != nil {
			return nil, domain.NewInternalError("failed to load course for quiz generation", err)
		}
		if course == nil {
			return nil, domain.NewNotFoundError(fmt.Sprintf("course %s not found", req.CourseID))
		}
		topic = course.Title
	}

	prompt := buildQuizPrompt(req.Difficulty, topic, req.QuestionCount)

	l.Info("Generating quiz",
		zap.String("topic", topic),
		zap.String("difficulty", string(req.Difficulty)),
		zap.Int("count", req.QuestionCount),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		l.Error("Generative API call failed",
			zap.Error(err),
			zap.String("topic", topic),
			zap.String("difficulty", string(req.Difficulty)),
		)
		return nil, domain.NewUpstreamFailureError(topic, string(req.Difficulty), err)
	}

	parsed, err := parseQuestionArray(raw)
	if err != nil {
		l.Error("Could not parse questions from model output",
			zap.Error(err),
			zap.String("topic", topic),
			zap.Int("raw_length", len(raw)),
		)
		return nil, domain.NewUnparsableResponseError(topic, string(req.Difficulty), err)
	}

	questions, err := buildQuestions(parsed, req.Difficulty, topic)
	if err != nil {
		l.Error("Generated batch failed shape validation",
			zap.Error(err),
			zap.String("topic", topic),
		)
		return nil, err
	}

	l.Info("Quiz generated",
		zap.String("topic", topic),
		zap.Int("questions", len(questions)),
	)
	return questions, nil
}

// parseQuestionArray extracts the JSON array embedded in the raw model reply
// and decodes it. An empty array counts as unparsable: the caller should
// retry rather than receive a zero-question quiz.
func parseQuestionArray(raw string) ([]generatedQuestion, error) {
	text := stripCodeFences(raw)

	// Prose often carries bracketed tokens ("Note [1]: ...") before the real
	// array, so a span that fails to decode does not end the scan: the search
	// resumes at the next '[' until a span yields questions.
	var lastErr error
	for offset := 0; offset < len(text); {
		span, start, ok := extractBalancedArray(text[offset:])
		if !ok {
			break
		}

		var parsed []generatedQuestion
		if err := json.Unmarshal([]byte(span), &parsed); err != nil {
			lastErr = err
		} else if len(parsed) == 0 {
			lastErr = fmt.Errorf("model output contained an empty question array")
		} else {
			return parsed, nil
		}
		offset += start + 1
	}

	// The whole reply as JSON is the last resort.
	var parsed []generatedQuestion
	if err := json.Unmarshal([]byte(text), &parsed); err == nil && len(parsed) > 0 {
		return parsed, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("reply contains no bracketed span")
	}
	return nil, fmt.Errorf("no JSON array found in model output: %w", lastErr)
}

// stripCodeFences removes a surrounding markdown code block, a common way
// for models to wrap JSON output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// extractBalancedArray returns the first bracket-balanced [...] span in s
// along with its start index. The scan is depth- and string-aware, so
// brackets inside question text do not cut the span short and trailing
// prose does not extend it.
func extractBalancedArray(s string) (string, int, bool) {
	start := strings.IndexByte(s, '[')
	if start == -1 {
		return "", 0, false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1], start, true
			}
		}
	}
	return "", 0, false
}

// buildQuestions validates every element and assigns batch-unique ids. The
// whole batch is rejected on the first malformed element; partial results
// are never returned.
func buildQuestions(parsed []generatedQuestion, difficulty domain.Difficulty, topic string) ([]domain.QuizQuestion, error) {
	questions := make([]domain.QuizQuestion, 0, len(parsed))
	for i, q := range parsed {
		if strings.TrimSpace(q.Question) == "" {
			return nil, domain.NewInvalidQuestionShapeError(i, "question text is empty")
		}
		if len(q.Options) != domain.OptionsPerQuestion {
			return nil, domain.NewInvalidQuestionShapeError(i, fmt.Sprintf("expected %d options, got %d", domain.OptionsPerQuestion, len(q.Options)))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= domain.OptionsPerQuestion {
			return nil, domain.NewInvalidQuestionShapeError(i, fmt.Sprintf("correct_answer %d is out of range", q.CorrectAnswer))
		}

		questions = append(questions, domain.QuizQuestion{
			ID:           questionID(i, difficulty, topic),
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectAnswer,
			Explanation:  q.Explanation,
		})
	}
	return questions, nil
}

// questionID combines batch position, a ULID (millisecond timestamp plus
// monotonic randomness), and topic/difficulty slugs. Ids never collide
// within a batch, and the random component keeps repeated same-millisecond
// batches distinct.
func questionID(index int, difficulty domain.Difficulty, topic string) string {
	return fmt.Sprintf("q_%d_%s_%s_%s",
		index,
		util.NewULID(),
		util.Slug(string(difficulty), 16),
		util.Slug(topic, 20),
	)
}
