package domain

import "time"

// Personalization stores the learner profile collected by the onboarding
// wizard. Subjects double as the interest tags for recommendations.
type Personalization struct {
	UserID         string
	Age            int
	Goals          []string
	SkillLevel     string
	Subjects       []string
	LearningStyle  string
	TimeCommitment string
	UpdatedAt      time.Time
}

// UserCourse tracks a learner's relationship with a catalog course.
type UserCourse struct {
	ID                 string
	UserID             string
	CourseID           string
	ProgressPercentage int
	Bookmarked         bool
	StartedAt          time.Time
	UpdatedAt          time.Time
	Course             *Course
}

// QuizRecord is a finalized quiz persisted to the learner's history.
type QuizRecord struct {
	ID             string
	UserID         string
	Title          string
	Type           SubjectMode
	CourseID       string
	Questions      []QuizQuestion
	Answers        []int
	Score          int
	TotalQuestions int
	ElapsedSeconds int
	CompletedAt    time.Time
}

// Streak is the learner's daily activity counter.
type Streak struct {
	UserID           string
	CurrentStreak    int
	LongestStreak    int
	LastActivityDate time.Time
}

// Touch advances the streak for activity on the given day: consecutive days
// extend it, a repeat on the same day is a no-op, a gap resets it to 1.
// Days are calendar days in the instant's own location, so zone offset
// changes between activities cannot split or merge a day.
func (s *Streak) Touch(day time.Time) {
	day = calendarDay(day)
	last := calendarDay(s.LastActivityDate)

	switch {
	case s.CurrentStreak == 0:
		s.CurrentStreak = 1
	case day.Equal(last):
		// Already counted today.
	case day.Equal(last.AddDate(0, 0, 1)):
		s.CurrentStreak++
	default:
		s.CurrentStreak = 1
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.LastActivityDate = day
}

// calendarDay collapses an instant to its wall-clock date, normalized to
// UTC so dates from different zone offsets compare by (year, month, day).
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Achievement is an earned badge, e.g. for a high quiz score.
type Achievement struct {
	ID       string
	UserID   string
	Kind     string
	Title    string
	Detail   string
	EarnedAt time.Time
}

// NotificationPreferences mirrors the settings page toggles.
type NotificationPreferences struct {
	EmailNotifications bool `json:"emailNotifications"`
	CourseReminders    bool `json:"courseReminders"`
	AchievementAlerts  bool `json:"achievementAlerts"`
	WeeklyProgress     bool `json:"weeklyProgress"`
}

// DefaultNotificationPreferences enables everything, matching the defaults
// presented to a new account.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		EmailNotifications: true,
		CourseReminders:    true,
		AchievementAlerts:  true,
		WeeklyProgress:     true,
	}
}
