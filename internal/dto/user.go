package dto

// PersonalizationRequest carries the onboarding wizard's answers.
type PersonalizationRequest struct {
	Age            int      `json:"age"`
	Goals          []string `json:"goals"`
	SkillLevel     string   `json:"skillLevel"`
	Subjects       []string `json:"subjects"`
	LearningStyle  string   `json:"learningStyle"`
	TimeCommitment string   `json:"timeCommitment"`
}

// PersonalizationResponse mirrors the stored learner profile.
type PersonalizationResponse struct {
	Age            int      `json:"age"`
	Goals          []string `json:"goals"`
	SkillLevel     string   `json:"skillLevel"`
	Subjects       []string `json:"subjects"`
	LearningStyle  string   `json:"learningStyle"`
	TimeCommitment string   `json:"timeCommitment"`
}

// StreakResponse is the learner's daily-activity counters.
type StreakResponse struct {
	CurrentStreak    int    `json:"currentStreak"`
	LongestStreak    int    `json:"longestStreak"`
	LastActivityDate string `json:"lastActivityDate,omitempty"`
}

// AchievementResponse is one earned badge.
type AchievementResponse struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Detail   string `json:"detail,omitempty"`
	EarnedAt string `json:"earnedAt"`
}

// AchievementListResponse wraps a user's badges.
type AchievementListResponse struct {
	Achievements []AchievementResponse `json:"achievements"`
}

// DashboardResponse aggregates the landing page data.
type DashboardResponse struct {
	Streak          StreakResponse           `json:"streak"`
	RecentCourses   []UserCourseResponse     `json:"recentCourses"`
	Personalization *PersonalizationResponse `json:"personalization,omitempty"`
}
