package handler

import (
	"versora/internal/domain"
	"versora/internal/dto"
	"versora/internal/middleware"
	"versora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles learner-owned data: enrollments, streaks,
// achievements, personalization, and the dashboard.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// StartCourse godoc
// @Summary Start a course
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.StartCourseRequest true "Course to start"
// @Success 200 {object} dto.UserCourseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me/courses [post]
func (h *UserHandler) StartCourse(c *fiber.Ctx) error {
	var req dto.StartCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	response, err := h.users.StartCourse(c.Context(), middleware.UserID(c), req.CourseID)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// UpdateCourseProgress godoc
// @Summary Update course progress
// @Tags users
// @Accept json
// @Param courseId path string true "Course id"
// @Param request body dto.UpdateCourseProgressRequest true "New progress"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me/courses/{courseId}/progress [put]
func (h *UserHandler) UpdateCourseProgress(c *fiber.Ctx) error {
	var req dto.UpdateCourseProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if err := h.users.UpdateCourseProgress(c.Context(), middleware.UserID(c), c.Params("courseId"), req.Progress); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BookmarkCourse godoc
// @Summary Bookmark or unbookmark a course
// @Tags users
// @Accept json
// @Param courseId path string true "Course id"
// @Param request body dto.BookmarkCourseRequest true "Bookmark flag"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me/courses/{courseId}/bookmark [put]
func (h *UserHandler) BookmarkCourse(c *fiber.Ctx) error {
	var req dto.BookmarkCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if err := h.users.BookmarkCourse(c.Context(), middleware.UserID(c), c.Params("courseId"), req.Bookmarked); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetStartedCourses godoc
// @Summary List my started courses
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserCourseListResponse
// @Security ApiKeyAuth
// @Router /users/me/courses [get]
func (h *UserHandler) GetStartedCourses(c *fiber.Ctx) error {
	response, err := h.users.GetStartedCourses(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// GetStreak godoc
// @Summary Get my activity streak
// @Tags users
// @Produce json
// @Success 200 {object} dto.StreakResponse
// @Security ApiKeyAuth
// @Router /users/me/streak [get]
func (h *UserHandler) GetStreak(c *fiber.Ctx) error {
	response, err := h.users.GetStreak(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// GetAchievements godoc
// @Summary List my achievements
// @Tags users
// @Produce json
// @Success 200 {object} dto.AchievementListResponse
// @Security ApiKeyAuth
// @Router /users/me/achievements [get]
func (h *UserHandler) GetAchievements(c *fiber.Ctx) error {
	response, err := h.users.GetAchievements(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// GetPersonalization godoc
// @Summary Get my personalization profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.PersonalizationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me/personalization [get]
func (h *UserHandler) GetPersonalization(c *fiber.Ctx) error {
	response, err := h.users.GetPersonalization(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// SavePersonalization godoc
// @Summary Save my personalization profile
// @Tags users
// @Accept json
// @Param request body dto.PersonalizationRequest true "Profile"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me/personalization [put]
func (h *UserHandler) SavePersonalization(c *fiber.Ctx) error {
	var req dto.PersonalizationRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if err := h.users.SavePersonalization(c.Context(), middleware.UserID(c), &req); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetDashboard godoc
// @Summary Get my dashboard
// @Tags users
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Security ApiKeyAuth
// @Router /users/me/dashboard [get]
func (h *UserHandler) GetDashboard(c *fiber.Ctx) error {
	response, err := h.users.GetDashboard(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(response)
}
