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

func newCourseTestApp(courses *MockCourseService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewCourseHandler(courses)
	app.Get("/api/courses", h.ListCourses)
	app.Get("/api/courses/search", h.SearchCourses)
	app.Get("/api/users/me/recommendations", fakeAuth("user1"), h.GetRecommendations)
	return app
}

func TestSearchCourses_PassesQueryParams(t *testing.T) {
	mockCourses := new(MockCourseService)
	app := newCourseTestApp(mockCourses)

	mockCourses.On("Search", mock.Anything, "react hooks", "10").
		Return(&dto.CourseListResponse{Courses: []dto.CourseResponse{{ID: "yt_abc", Title: "React Hooks"}}}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/courses/search?q=react+hooks&maxResults=10", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.CourseListResponse
	decodeBody(t, resp, &body)
	require.Len(t, body.Courses, 1)
	assert.Equal(t, "yt_abc", body.Courses[0].ID)
	mockCourses.AssertExpectations(t)
}

func TestSearchCourses_SourceFailureIs500(t *testing.T) {
	mockCourses := new(MockCourseService)
	app := newCourseTestApp(mockCourses)

	mockCourses.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.NewCourseSourceError(nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/courses/search", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestListCourses(t *testing.T) {
	mockCourses := new(MockCourseService)
	app := newCourseTestApp(mockCourses)

	mockCourses.On("ListCatalog", mock.Anything, 0).
		Return(&dto.CourseListResponse{Courses: []dto.CourseResponse{}}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/courses", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetRecommendations(t *testing.T) {
	mockCourses := new(MockCourseService)
	app := newCourseTestApp(mockCourses)

	mockCourses.On("GetRecommendations", mock.Anything, "user1").
		Return(&dto.CourseListResponse{Courses: []dto.CourseResponse{{ID: "c1"}, {ID: "c2"}}}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/me/recommendations", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.CourseListResponse
	decodeBody(t, resp, &body)
	assert.Len(t, body.Courses, 2)
	mockCourses.AssertExpectations(t)
}
