package domain

import "context"

// CourseLevel is the difficulty classification of a course. Distinct from
// quiz Difficulty: course levels are capitalized catalog labels.
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "Beginner"
	LevelIntermediate CourseLevel = "Intermediate"
	LevelAdvanced     CourseLevel = "Advanced"
)

// Course is a catalog entry, either curated or sourced from the video
// platform. Read-only input to the recommendation scorer.
type Course struct {
	ID           string
	Title        string
	Description  string
	Provider     string
	ExternalURL  string
	ThumbnailURL string
	Category     string
	Level        CourseLevel
	Tags         []string
	// DurationHours and Rating are only set when the provider reports them.
	DurationHours int
	Rating        float64
}

// CourseSource is the port to the external video-search provider.
type CourseSource interface {
	Search(ctx context.Context, query string, maxResults int64) ([]Course, error)
}
