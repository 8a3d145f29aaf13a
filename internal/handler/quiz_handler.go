package handler

import (
	"versora/internal/domain"
	"versora/internal/dto"
	"versora/internal/middleware"
	"versora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz generation and submission requests.
type QuizHandler struct {
	generation service.QuizGenerationService
	users      service.UserService
}

// NewQuizHandler creates a new QuizHandler instance.
func NewQuizHandler(generation service.QuizGenerationService, users service.UserService) *QuizHandler {
	return &QuizHandler{generation: generation, users: users}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates a batch of multiple-choice questions for a topic or course
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation parameters"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	questions, err := h.generation.Generate(c.Context(), domain.QuizRequest{
		SubjectMode:   domain.SubjectMode(req.Type),
		Topic:         req.Topic,
		CourseID:      req.CourseID,
		Difficulty:    domain.Difficulty(req.Difficulty),
		QuestionCount: req.QuestionCount,
	})
	if err != nil {
		return err
	}

	response := dto.GenerateQuizResponse{
		Questions: make([]dto.QuizQuestionResponse, 0, len(questions)),
	}
	for _, q := range questions {
		response.Questions = append(response.Questions, dto.QuizQuestionResponse{
			ID:            q.ID,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectIndex,
			Explanation:   q.Explanation,
		})
	}
	return c.JSON(response)
}

// SubmitQuiz godoc
// @Summary Submit a finalized quiz
// @Description Persists a completed quiz session and returns the score
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.SubmitQuizRequest true "Finalized quiz"
// @Success 200 {object} dto.SubmitQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	response, err := h.users.SubmitQuiz(c.Context(), middleware.UserID(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// GetQuizHistory godoc
// @Summary Get my quiz history
// @Tags quizzes
// @Produce json
// @Success 200 {object} dto.QuizHistoryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me/quizzes [get]
func (h *QuizHandler) GetQuizHistory(c *fiber.Ctx) error {
	response, err := h.users.GetQuizHistory(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(response)
}
