package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a jsonb column.
type StringSlice []string

// Value implements the driver.Valuer interface.
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface.
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// IntSlice stores a []int as a jsonb column (selected answer indices).
type IntSlice []int

func (s IntSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (s *IntSlice) Scan(value interface{}) error {
	if value == nil {
		*s = IntSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("IntSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = IntSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// JSONText stores an arbitrary JSON document verbatim (quiz question
// payloads). The content is opaque to the repository layer.
type JSONText []byte

func (j JSONText) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "null", nil
	}
	return string(j), nil
}

func (j *JSONText) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSONText(v)
	default:
		return errors.New("JSONText Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	return nil
}

// Course is the courses table row.
type Course struct {
	ID            string          `db:"id"`
	Title         string          `db:"title"`
	Description   sql.NullString  `db:"description"`
	Provider      sql.NullString  `db:"provider"`
	ExternalURL   sql.NullString  `db:"external_url"`
	ThumbnailURL  sql.NullString  `db:"thumbnail_url"`
	Category      string          `db:"category"`
	Level         string          `db:"difficulty_level"`
	Tags          StringSlice     `db:"tags"`
	DurationHours sql.NullInt64   `db:"duration_hours"`
	Rating        sql.NullFloat64 `db:"rating"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// UserCourse is the user_courses table row.
type UserCourse struct {
	ID                 string    `db:"id"`
	UserID             string    `db:"user_id"`
	CourseID           string    `db:"course_id"`
	ProgressPercentage int       `db:"progress_percentage"`
	Bookmarked         bool      `db:"bookmarked"`
	StartedAt          time.Time `db:"started_at"`
	UpdatedAt          time.Time `db:"updated_at"`

	// Joined course columns, populated by list queries.
	CourseTitle    sql.NullString `db:"course_title"`
	CourseCategory sql.NullString `db:"course_category"`
	CourseLevel    sql.NullString `db:"course_level"`
}

// QuizRecord is the quizzes table row: one finalized quiz per row, with the
// full question payload kept as jsonb.
type QuizRecord struct {
	ID             string         `db:"id"`
	UserID         string         `db:"user_id"`
	Title          string         `db:"title"`
	Type           string         `db:"type"`
	CourseID       sql.NullString `db:"course_id"`
	Questions      JSONText       `db:"questions"`
	Answers        IntSlice       `db:"answers"`
	Score          int            `db:"score"`
	TotalQuestions int            `db:"total_questions"`
	ElapsedSeconds int            `db:"elapsed_seconds"`
	CompletedAt    time.Time      `db:"completed_at"`
}

// Streak is the streaks table row, one per user.
type Streak struct {
	UserID           string    `db:"user_id"`
	CurrentStreak    int       `db:"current_streak"`
	LongestStreak    int       `db:"longest_streak"`
	LastActivityDate time.Time `db:"last_activity_date"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// Achievement is the achievements table row.
type Achievement struct {
	ID       string    `db:"id"`
	UserID   string    `db:"user_id"`
	Kind     string    `db:"kind"`
	Title    string    `db:"title"`
	Detail   string    `db:"detail"`
	EarnedAt time.Time `db:"earned_at"`
}

// Personalization is the personalization table row, one per user.
type Personalization struct {
	UserID         string      `db:"user_id"`
	Age            int         `db:"age"`
	Goals          StringSlice `db:"goals"`
	SkillLevel     string      `db:"skill_level"`
	Subjects       StringSlice `db:"subjects"`
	LearningStyle  string      `db:"learning_style"`
	TimeCommitment string      `db:"time_commitment"`
	UpdatedAt      time.Time   `db:"updated_at"`
}
