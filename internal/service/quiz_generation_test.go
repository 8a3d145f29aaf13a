package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"versora/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func questionBatchJSON(t *testing.T, count int) string {
	t.Helper()
	batch := make([]generatedQuestion, 0, count)
	for i := 0; i < count; i++ {
		batch = append(batch, generatedQuestion{
			Question:      fmt.Sprintf("What is concept %d?", i),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: i % 4,
			Explanation:   fmt.Sprintf("Because of concept %d.", i),
		})
	}
	data, err := json.Marshal(batch)
	require.NoError(t, err)
	return string(data)
}

func generalRequest(count int) domain.QuizRequest {
	return domain.QuizRequest{
		SubjectMode:   domain.SubjectModeGeneral,
		Topic:         "Go concurrency",
		Difficulty:    domain.DifficultyBeginner,
		QuestionCount: count,
	}
}

func TestGenerate_ReturnsExactlyRequestedCount(t *testing.T) {
	mockGen := new(MockQuestionGenerator)
	svc := NewQuizGenerationService(mockGen, new(MockCourseRepository))

	mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(questionBatchJSON(t, 5), nil)

	questions, err := svc.Generate(context.Background(), generalRequest(5))

	require.NoError(t, err)
	assert.Len(t, questions, 5)
	for _, q := range questions {
		assert.NotEmpty(t, q.Question)
		assert.Len(t, q.Options, domain.OptionsPerQuestion)
		assert.GreaterOrEqual(t, q.CorrectIndex, 0)
		assert.Less(t, q.CorrectIndex, domain.OptionsPerQuestion)
	}
	mockGen.AssertExpectations(t)
}

func TestGenerate_ExtractsArrayFromSurroundingProse(t *testing.T) {
	mockGen := new(MockQuestionGenerator)
	svc := NewQuizGenerationService(mockGen, new(MockCourseRepository))

	raw := "Sure! Here are your questions:\n" + questionBatchJSON(t, 3) + "\nLet me know if you need more."
	mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(raw, nil)

	questions, err := svc.Generate(context.Background(), generalRequest(3))

	require.NoError(t, err)
	assert.Len(t, questions, 3)
}

func TestGenerate_ExtractsArrayFromCodeFence(t *testing.T) {
	mockGen := new(MockQuestionGenerator)
	svc := NewQuizGenerationService(mockGen, new(MockCourseRepository))

	raw := "```json\n" + questionBatchJSON(t, 2) + "\n```"
	mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(raw, nil)

	questions, err := svc.Generate(context.Background(), generalRequest(2))

	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestGenerate_SkipsBracketedProseBeforeArray(t *testing.T) {
	mockGen := new(MockQuestionGenerator)
	svc := NewQuizGenerationService(mockGen, new(MockCourseRepository))

	raw := "Note [1]: sources cited below [a][b].\n" + questionBatchJSON(t, 3) + "\nReferences: [2], [3]."
	mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(raw, nil)

	questions, err := svc.Generate(context.Background(), generalRequest(3))

	require.NoError(t, err)
	assert.Len(t, questions, 3)
}

func TestGenerate_PlainTextIsUnparsable(t *testing.T) {
	mockGen := new(MockQuestionGenerator)
	svc := NewQuizGenerationService(mockGen, new(MockCourseRepository))

	mockGen.On("GenerateContent", mock.Anything, mock.Anything).
		Return("I cannot create a quiz about that topic.", nil)

	questions, err := svc.Generate(context.Background(), generalRequest(3))

	require.Error(t, err)
	assert.Nil(t, questions)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnparsableResponse, domainErr.Code)
}

func TestGenerate_MalformedElementFailsWholeBatch(t *testing.T) {
	mockGen := new(MockQuestionGenerator)
	svc := NewQuizGenerationService(mockGen, new(MockCourseRepository))

	// Element at index 2 has only three options.
	batch := []generatedQuestion{
		{Question: "Q0?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 0},
		{Question: "Q1?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 1},
		{Question: "Q2?", Options: []string{"A", "B", "C"}, CorrectAnswer: 1},
		{Question: "Q3?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 2},
	}
	data, err := json.Marshal(batch)
	require.NoError(t, err)
	mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(string(data), nil)

	questions, err := svc.Generate(context.Background(), generalRequest(4))

	require.Error(t, err)
	assert.Nil(t, questions, "no partial batch on validation failure")
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidQuestionShape, domainErr.Code)
	assert.Contains(t, domainErr.Message, "index 2")
}

func TestGenerate_CorrectAnswerOutOfRangeFailsBatch(t *testing.T) {
	mockGen := new(MockQuestionGenerator)
	svc := NewQuizGenerationService(mockGen, new(MockCourseRepository))

	batch := []generatedQuestion{
		{Question: "Q0?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 4},
	}
	data, err := json.Marshal(batch)
	require.NoError(t, err)
	mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(string(data), nil)

	_, err = svc.Generate(context.Background(), generalRequest(1))

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidQuestionShape, domainErr.Code)
}

func TestGenerate_UpstreamErrorIsSurfaced(t *testing.T) {
	mockGen := new(MockQuestionGenerator)
	svc := NewQuizGenerationService(mockGen, new(MockCourseRepository))

	mockGen.On("GenerateContent", mock.Anything, mock.Anything).
		Return("", errors.New("rpc error: quota exceeded"))

	_, err := svc.Generate(context.Background(), generalRequest(3))

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUpstreamFailure, domainErr.Code)
}

func TestGenerate_QuestionIDsAreBatchUnique(t *testing.T) {
	mockGen := new(MockQuestionGenerator)
	svc := NewQuizGenerationService(mockGen, new(MockCourseRepository))

	mockGen.On("GenerateContent", mock.Anything, mock.Anything).Return(questionBatchJSON(t, 20), nil)

	questions, err := svc.Generate(context.Background(), generalRequest(20))
	require.NoError(t, err)

	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		_, dup := seen[q.ID]
		assert.False(t, dup, "duplicate id %s", q.ID)
		seen[q.ID] = struct{}{}
		assert.True(t, strings.HasPrefix(q.ID, "q_"))
		assert.Contains(t, q.ID, "beginner")
	}
}

func TestGenerate_UnknownDifficultyDefaultsToIntermediate(t *testing.T) {
	mockGen := new(MockQuestionGenerator)
	svc := NewQuizGenerationService(mockGen, new(MockCourseRepository))

	var capturedPrompt string
	mockGen.On("GenerateContent", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		capturedPrompt = prompt
		return true
	})).Return(questionBatchJSON(t, 1), nil)

	req := domain.QuizRequest{
		SubjectMode:   domain.SubjectModeGeneral,
		Topic:         "algebra",
		Difficulty:    "impossible",
		QuestionCount: 1,
	}
	_, err := svc.Generate(context.Background(), req)

	require.NoError(t, err)
	assert.Contains(t, capturedPrompt, "intermediate-level")
	assert.Contains(t, capturedPrompt, "Difficulty: intermediate")
}

func TestGenerate_QuestionCountBounds(t *testing.T) {
	svc := NewQuizGenerationService(new(MockQuestionGenerator), new(MockCourseRepository))

	for _, count := range []int{0, -1, 51} {
		_, err := svc.Generate(context.Background(), generalRequest(count))
		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr), "count %d should be rejected", count)
		assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	}
}

func TestGenerate_GeneralModeRequiresTopic(t *testing.T) {
	svc := NewQuizGenerationService(new(MockQuestionGenerator), new(MockCourseRepository))

	req := domain.QuizRequest{
		SubjectMode:   domain.SubjectModeGeneral,
		Difficulty:    domain.DifficultyBeginner,
		QuestionCount: 3,
	}
	_, err := svc.Generate(context.Background(), req)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}

func TestGenerate_CourseModeUsesCourseTitleAsTopic(t *testing.T) {
	mockGen := new(MockQuestionGenerator)
	mockCourseRepo := new(MockCourseRepository)
	svc := NewQuizGenerationService(mockGen, mockCourseRepo)

	mockCourseRepo.On("GetByID", mock.Anything, "course123").
		Return(&domain.Course{ID: "course123", Title: "React Fundamentals"}, nil)

	var capturedPrompt string
	mockGen.On("GenerateContent", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		capturedPrompt = prompt
		return true
	})).Return(questionBatchJSON(t, 2), nil)

	req := domain.QuizRequest{
		SubjectMode:   domain.SubjectModeCourse,
		CourseID:      "course123",
		Difficulty:    domain.DifficultyAdvanced,
		QuestionCount: 2,
	}
	questions, err := svc.Generate(context.Background(), req)

	require.NoError(t, err)
	assert.Len(t, questions, 2)
	assert.Contains(t, capturedPrompt, "React Fundamentals")
	mockCourseRepo.AssertExpectations(t)
}

func TestGenerate_CourseModeUnknownCourse(t *testing.T) {
	mockCourseRepo := new(MockCourseRepository)
	svc := NewQuizGenerationService(new(MockQuestionGenerator), mockCourseRepo)

	mockCourseRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	req := domain.QuizRequest{
		SubjectMode:   domain.SubjectModeCourse,
		CourseID:      "missing",
		Difficulty:    domain.DifficultyBeginner,
		QuestionCount: 2,
	}
	_, err := svc.Generate(context.Background(), req)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestParseQuestionArray_BracketsInsideStrings(t *testing.T) {
	raw := `Note [1]: see below
[{"question": "Which slice expression copies s[1:3]?", "options": ["a[0]", "b", "c", "d"], "correct_answer": 0, "explanation": "indexing [i:j]"}]
trailing [2] footnote`

	parsed, err := parseQuestionArray(raw)

	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Contains(t, parsed[0].Question, "s[1:3]")
}

func TestParseQuestionArray_SkipsNonQuestionArrays(t *testing.T) {
	raw := `[1] and ["just", "strings"] come first
[{"question": "Q?", "options": ["a", "b", "c", "d"], "correct_answer": 2, "explanation": "e"}]`

	parsed, err := parseQuestionArray(raw)

	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, 2, parsed[0].CorrectAnswer)
}

func TestParseQuestionArray_EmptyArrayIsError(t *testing.T) {
	_, err := parseQuestionArray("[]")
	assert.Error(t, err)
}

func TestBuildQuizPrompt_SelectsTierTemplate(t *testing.T) {
	tests := []struct {
		difficulty domain.Difficulty
		marker     string
	}{
		{domain.DifficultyBeginner, "beginner-level"},
		{domain.DifficultyIntermediate, "intermediate-level"},
		{domain.DifficultyAdvanced, "advanced-level"},
	}
	for _, tt := range tests {
		prompt := buildQuizPrompt(tt.difficulty, "chess", 7)
		assert.Contains(t, prompt, tt.marker)
		assert.Contains(t, prompt, "exactly 7")
		assert.Contains(t, prompt, `"chess"`)
		assert.Contains(t, prompt, "correct_answer")
	}
}
