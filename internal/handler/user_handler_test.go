package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"versora/internal/domain"
	"versora/internal/dto"
	"versora/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserTestApp(users *MockUserService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewUserHandler(users)
	group := app.Group("/api/users/me", fakeAuth("user1"))
	group.Get("/courses", h.GetStartedCourses)
	group.Post("/courses", h.StartCourse)
	group.Put("/courses/:courseId/progress", h.UpdateCourseProgress)
	group.Put("/courses/:courseId/bookmark", h.BookmarkCourse)
	group.Get("/streak", h.GetStreak)
	group.Get("/achievements", h.GetAchievements)
	group.Get("/personalization", h.GetPersonalization)
	group.Put("/personalization", h.SavePersonalization)
	group.Get("/dashboard", h.GetDashboard)
	return app
}

func TestStartCourse(t *testing.T) {
	mockUsers := new(MockUserService)
	app := newUserTestApp(mockUsers)

	mockUsers.On("StartCourse", mock.Anything, "user1", "c1").
		Return(&dto.UserCourseResponse{ID: "uc1", CourseID: "c1"}, nil)

	req := jsonRequest(t, http.MethodPost, "/api/users/me/courses", dto.StartCourseRequest{CourseID: "c1"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.UserCourseResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "uc1", body.ID)
	mockUsers.AssertExpectations(t)
}

func TestUpdateCourseProgress(t *testing.T) {
	mockUsers := new(MockUserService)
	app := newUserTestApp(mockUsers)

	mockUsers.On("UpdateCourseProgress", mock.Anything, "user1", "c1", 75).Return(nil)

	req := jsonRequest(t, http.MethodPut, "/api/users/me/courses/c1/progress", dto.UpdateCourseProgressRequest{Progress: 75})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	mockUsers.AssertExpectations(t)
}

func TestUpdateCourseProgress_NotStartedIs404(t *testing.T) {
	mockUsers := new(MockUserService)
	app := newUserTestApp(mockUsers)

	mockUsers.On("UpdateCourseProgress", mock.Anything, "user1", "c9", 10).
		Return(domain.NewNotFoundError("course is not started"))

	req := jsonRequest(t, http.MethodPut, "/api/users/me/courses/c9/progress", dto.UpdateCourseProgressRequest{Progress: 10})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBookmarkCourse(t *testing.T) {
	mockUsers := new(MockUserService)
	app := newUserTestApp(mockUsers)

	mockUsers.On("BookmarkCourse", mock.Anything, "user1", "c1", true).Return(nil)

	req := jsonRequest(t, http.MethodPut, "/api/users/me/courses/c1/bookmark", dto.BookmarkCourseRequest{Bookmarked: true})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	mockUsers.AssertExpectations(t)
}

func TestGetStreak(t *testing.T) {
	mockUsers := new(MockUserService)
	app := newUserTestApp(mockUsers)

	mockUsers.On("GetStreak", mock.Anything, "user1").
		Return(&dto.StreakResponse{CurrentStreak: 5, LongestStreak: 9}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/me/streak", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.StreakResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, 5, body.CurrentStreak)
}

func TestGetPersonalization_NotFoundIs404(t *testing.T) {
	mockUsers := new(MockUserService)
	app := newUserTestApp(mockUsers)

	mockUsers.On("GetPersonalization", mock.Anything, "user1").
		Return(nil, domain.NewNotFoundError("personalization profile not found"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/me/personalization", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSavePersonalization(t *testing.T) {
	mockUsers := new(MockUserService)
	app := newUserTestApp(mockUsers)

	mockUsers.On("SavePersonalization", mock.Anything, "user1", mock.MatchedBy(func(req *dto.PersonalizationRequest) bool {
		return len(req.Subjects) == 2 && req.SkillLevel == "beginner"
	})).Return(nil)

	req := jsonRequest(t, http.MethodPut, "/api/users/me/personalization", dto.PersonalizationRequest{
		Age:        30,
		Subjects:   []string{"go", "design"},
		SkillLevel: "beginner",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	mockUsers.AssertExpectations(t)
}

func TestGetDashboard(t *testing.T) {
	mockUsers := new(MockUserService)
	app := newUserTestApp(mockUsers)

	mockUsers.On("GetDashboard", mock.Anything, "user1").
		Return(&dto.DashboardResponse{
			Streak:        dto.StreakResponse{CurrentStreak: 2},
			RecentCourses: []dto.UserCourseResponse{{ID: "uc1"}},
		}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/me/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.DashboardResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, 2, body.Streak.CurrentStreak)
	require.Len(t, body.RecentCourses, 1)
}
