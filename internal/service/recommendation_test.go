package service

import (
	"fmt"
	"testing"

	"versora/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendCourses_ScoreOrdering(t *testing.T) {
	candidates := []domain.Course{
		{ID: "A", Level: domain.LevelBeginner, Tags: []string{"python"}},                   // 2 + 0.5 = 2.5
		{ID: "B", Level: domain.LevelAdvanced, Tags: []string{"rust"}},                     // 0 + 1.0 = 1.0
		{ID: "C", Level: domain.LevelIntermediate, Tags: []string{"python", "data"}},       // 4 + 0.8 = 4.8
		{ID: "D", Level: domain.LevelAdvanced, Tags: []string{"python", "data", "cloud"}},  // 4 + 1.0 = 5.0 (cloud not an interest)
	}

	result := RecommendCourses([]string{"python", "data"}, candidates, nil)

	require.Len(t, result, 4)
	assert.Equal(t, "D", result[0].ID)
	assert.Equal(t, "C", result[1].ID)
	assert.Equal(t, "A", result[2].ID)
	assert.Equal(t, "B", result[3].ID)
}

func TestRecommendCourses_TagMatchingIsCaseInsensitive(t *testing.T) {
	candidates := []domain.Course{
		{ID: "match", Level: domain.LevelBeginner, Tags: []string{"Machine Learning"}},
		{ID: "nomatch", Level: domain.LevelBeginner, Tags: []string{"painting"}},
	}

	result := RecommendCourses([]string{"machine learning"}, candidates, nil)

	require.Len(t, result, 2)
	assert.Equal(t, "match", result[0].ID)
}

func TestRecommendCourses_EmptyInterestsRanksByLevel(t *testing.T) {
	candidates := []domain.Course{
		{ID: "beginner", Level: domain.LevelBeginner},
		{ID: "advanced", Level: domain.LevelAdvanced},
		{ID: "intermediate", Level: domain.LevelIntermediate},
	}

	result := RecommendCourses(nil, candidates, nil)

	require.Len(t, result, 3)
	assert.Equal(t, "advanced", result[0].ID)
	assert.Equal(t, "intermediate", result[1].ID)
	assert.Equal(t, "beginner", result[2].ID)
}

func TestRecommendCourses_StableOnTies(t *testing.T) {
	// Identical scores keep input order.
	candidates := []domain.Course{
		{ID: "first", Level: domain.LevelIntermediate, Tags: []string{"go"}},
		{ID: "second", Level: domain.LevelIntermediate, Tags: []string{"go"}},
		{ID: "third", Level: domain.LevelIntermediate, Tags: []string{"go"}},
	}

	result := RecommendCourses([]string{"go"}, candidates, nil)

	require.Len(t, result, 3)
	assert.Equal(t, "first", result[0].ID)
	assert.Equal(t, "second", result[1].ID)
	assert.Equal(t, "third", result[2].ID)
}

func TestRecommendCourses_ExcludesStartedCourses(t *testing.T) {
	candidates := []domain.Course{
		{ID: "started", Level: domain.LevelAdvanced, Tags: []string{"go"}},
		{ID: "fresh", Level: domain.LevelBeginner},
	}

	result := RecommendCourses([]string{"go"}, candidates, []string{"started"})

	require.Len(t, result, 1)
	assert.Equal(t, "fresh", result[0].ID)
}

func TestRecommendCourses_CapsAtSix(t *testing.T) {
	candidates := make([]domain.Course, 10)
	for i := range candidates {
		candidates[i] = domain.Course{ID: fmt.Sprintf("c%d", i), Level: domain.LevelAdvanced}
	}

	result := RecommendCourses(nil, candidates, nil)

	assert.Len(t, result, MaxRecommendations)
}

func TestRecommendCourses_EmptyCandidates(t *testing.T) {
	result := RecommendCourses([]string{"go"}, nil, nil)
	assert.Empty(t, result)
}

func TestLevelWeight(t *testing.T) {
	assert.Equal(t, 0.5, levelWeight(domain.LevelBeginner))
	assert.Equal(t, 0.8, levelWeight(domain.LevelIntermediate))
	assert.Equal(t, 1.0, levelWeight(domain.LevelAdvanced))
	// Unknown labels weigh like advanced content.
	assert.Equal(t, 1.0, levelWeight(domain.CourseLevel("Expert")))
}
