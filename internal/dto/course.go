package dto

// CourseResponse represents a course in the API response.
// @Description Course information
type CourseResponse struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Provider        string   `json:"provider,omitempty"`
	ExternalURL     string   `json:"external_url,omitempty"`
	ThumbnailURL    string   `json:"thumbnail_url,omitempty"`
	Category        string   `json:"category"`
	DifficultyLevel string   `json:"difficulty_level"`
	Tags            []string `json:"tags,omitempty"`
	// DurationHours and Rating are omitted when the provider does not
	// report them.
	DurationHours int     `json:"duration_hours,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
}

// CourseListResponse wraps a list of courses.
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
}

// UserCourseResponse represents a learner's enrollment state for a course.
type UserCourseResponse struct {
	ID                 string          `json:"id"`
	CourseID           string          `json:"course_id"`
	ProgressPercentage int             `json:"progress_percentage"`
	Bookmarked         bool            `json:"bookmarked"`
	StartedAt          string          `json:"started_at"`
	Course             *CourseResponse `json:"course,omitempty"`
}

// UserCourseListResponse wraps a list of enrollments.
type UserCourseListResponse struct {
	Courses []UserCourseResponse `json:"courses"`
}

// StartCourseRequest enrolls the user in a course.
type StartCourseRequest struct {
	CourseID string `json:"courseId"`
}

// UpdateCourseProgressRequest moves the user's progress marker.
type UpdateCourseProgressRequest struct {
	Progress int `json:"progress"`
}

// BookmarkCourseRequest toggles a bookmark.
type BookmarkCourseRequest struct {
	Bookmarked bool `json:"bookmarked"`
}
