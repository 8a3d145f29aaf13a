package handler

import (
	"versora/internal/middleware"
	"versora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles course discovery and recommendation requests.
type CourseHandler struct {
	courses service.CourseService
}

// NewCourseHandler creates a new CourseHandler instance.
func NewCourseHandler(courses service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// SearchCourses godoc
// @Summary Search external courses
// @Description Searches the video platform for long-form course content
// @Tags courses
// @Produce json
// @Param q query string false "Free-text query"
// @Param maxResults query string false "Maximum number of results"
// @Success 200 {object} dto.CourseListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/search [get]
func (h *CourseHandler) SearchCourses(c *fiber.Ctx) error {
	response, err := h.courses.Search(c.Context(), c.Query("q"), c.Query("maxResults"))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// ListCourses godoc
// @Summary List catalog courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.CourseListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	response, err := h.courses.ListCatalog(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// GetRecommendations godoc
// @Summary Get my course recommendations
// @Description Ranks catalog courses against the user's interest tags
// @Tags courses
// @Produce json
// @Success 200 {object} dto.CourseListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me/recommendations [get]
func (h *CourseHandler) GetRecommendations(c *fiber.Ctx) error {
	response, err := h.courses.GetRecommendations(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(response)
}
