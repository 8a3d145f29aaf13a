package service

import (
	"sort"
	"strings"

	"versora/internal/domain"
)

// MaxRecommendations caps the ranked subset returned to the client.
const MaxRecommendations = 6

// levelWeight biases ties toward more advanced content.
func levelWeight(level domain.CourseLevel) float64 {
	switch level {
	case domain.LevelBeginner:
		return 0.5
	case domain.LevelIntermediate:
		return 0.8
	default:
		return 1.0
	}
}

// RecommendCourses ranks candidates by relevance to the interest tags:
// score = 2 x (case-insensitive tag matches) + levelWeight. The sort is
// stable because candidate order may encode recency or curation priority.
// Total over its inputs; empty interests or candidates yield an empty or
// level-ordered result.
func RecommendCourses(interestTags []string, candidates []domain.Course, excludeIDs []string) []domain.Course {
	interestSet := make(map[string]struct{}, len(interestTags))
	for _, tag := range interestTags {
		interestSet[strings.ToLower(tag)] = struct{}{}
	}
	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	type scored struct {
		course domain.Course
		score  float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if _, skip := excluded[c.ID]; skip {
			continue
		}
		score := levelWeight(c.Level)
		for _, tag := range c.Tags {
			if _, ok := interestSet[strings.ToLower(tag)]; ok {
				score += 2
			}
		}
		ranked = append(ranked, scored{course: c, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	n := len(ranked)
	if n > MaxRecommendations {
		n = MaxRecommendations
	}
	result := make([]domain.Course, 0, n)
	for _, r := range ranked[:n] {
		result = append(result, r.course)
	}
	return result
}
