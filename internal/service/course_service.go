package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"versora/internal/cache"
	"versora/internal/config"
	"versora/internal/domain"
	"versora/internal/dto"
	"versora/internal/logger"
	"versora/internal/repository"
	"versora/internal/util"

	"go.uber.org/zap"
)

const (
	defaultSearchQuery      = "programming tutorial"
	defaultSearchMaxResults = 20
	searchMaxResultsCap     = 50
	recommendCandidateLimit = 100
)

// CourseService handles course discovery, the catalog, and recommendations.
type CourseService interface {
	Search(ctx context.Context, query string, maxResults string) (*dto.CourseListResponse, error)
	ListCatalog(ctx context.Context, limit int) (*dto.CourseListResponse, error)
	GetRecommendations(ctx context.Context, userID string) (*dto.CourseListResponse, error)
}

type courseServiceImpl struct {
	source              domain.CourseSource
	courseRepo          repository.CourseRepository
	userCourseRepo      repository.UserCourseRepository
	personalizationRepo repository.PersonalizationRepository
	cache               domain.Cache
	cfg                 *config.Config
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	source domain.CourseSource,
	courseRepo repository.CourseRepository,
	userCourseRepo repository.UserCourseRepository,
	personalizationRepo repository.PersonalizationRepository,
	cacheClient domain.Cache,
	cfg *config.Config,
) CourseService {
	return &courseServiceImpl{
		source:              source,
		courseRepo:          courseRepo,
		userCourseRepo:      userCourseRepo,
		personalizationRepo: personalizationRepo,
		cache:               cacheClient,
		cfg:                 cfg,
	}
}

// categoryKeywords classifies provider-sourced videos into catalog
// categories by keyword matching over title+description. First match wins;
// no match falls through to "Technology".
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Web Development", []string{"javascript", "js", "react", "node"}},
	{"Programming", []string{"python", "django", "flask"}},
	{"Data Science", []string{"machine learning", "ai", "data science"}},
	{"Design", []string{"design", "ui", "ux"}},
	{"Business", []string{"business", "marketing", "management"}},
	{"Mathematics", []string{"math", "calculus", "algebra"}},
}

var (
	beginnerKeywords = []string{"beginner", "intro", "basics", "fundamentals"}
	advancedKeywords = []string{"advanced", "expert", "master", "professional"}
)

func inferCategory(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.category
			}
		}
	}
	return "Technology"
}

func inferLevel(title, description string) domain.CourseLevel {
	text := strings.ToLower(title + " " + description)
	for _, kw := range beginnerKeywords {
		if strings.Contains(text, kw) {
			return domain.LevelBeginner
		}
	}
	for _, kw := range advancedKeywords {
		if strings.Contains(text, kw) {
			return domain.LevelAdvanced
		}
	}
	return domain.LevelIntermediate
}

// Search queries the video provider, classifies each result, and caches the
// final payload. maxResults arrives string-encoded from the query string.
func (s *courseServiceImpl) Search(ctx context.Context, query string, maxResults string) (*dto.CourseListResponse, error) {
	l := logger.Get()

	if strings.TrimSpace(query) == "" {
		query = defaultSearchQuery
	}
	limit := int64(defaultSearchMaxResults)
	if maxResults != "" {
		parsed, err := strconv.ParseInt(maxResults, 10, 64)
		if err != nil || parsed < 1 {
			return nil, domain.NewInvalidInputError("maxResults must be a positive integer")
		}
		if parsed > searchMaxResultsCap {
			parsed = searchMaxResultsCap
		}
		limit = parsed
	}

	cacheKey := cache.GenerateCacheKey("course", "search", util.Slug(query, 64), strconv.FormatInt(limit, 10))
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var response dto.CourseListResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				l.Debug("Course search cache hit", zap.String("query", query))
				return &response, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			l.Warn("Course search cache read failed", zap.Error(err))
		}
	}

	results, err := s.source.Search(ctx, query, limit)
	if err != nil {
		return nil, domain.NewCourseSourceError(err)
	}

	response := &dto.CourseListResponse{Courses: make([]dto.CourseResponse, 0, len(results))}
	for i := range results {
		course := results[i]
		course.Category = inferCategory(course.Title, course.Description)
		course.Level = inferLevel(course.Title, course.Description)

		// Keep provider courses in the catalog so they can be enrolled
		// against and quizzed on later.
		if err := s.courseRepo.UpsertExternal(ctx, &course); err != nil {
			l.Warn("Failed to store external course", zap.Error(err), zap.String("course_id", course.ID))
		}

		response.Courses = append(response.Courses, toCourseResponse(course))
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(payload), s.cfg.CourseSearch.CacheTTL); err != nil {
				l.Warn("Course search cache write failed", zap.Error(err))
			}
		}
	}

	return response, nil
}

func (s *courseServiceImpl) ListCatalog(ctx context.Context, limit int) (*dto.CourseListResponse, error) {
	if limit <= 0 {
		limit = recommendCandidateLimit
	}
	courses, err := s.courseRepo.ListAll(ctx, limit)
	if err != nil {
		return nil, domain.NewInternalError("failed to list courses", err)
	}

	response := &dto.CourseListResponse{Courses: make([]dto.CourseResponse, 0, len(courses))}
	for _, c := range courses {
		response.Courses = append(response.Courses, toCourseResponse(c))
	}
	return response, nil
}

// GetRecommendations ranks catalog courses against the user's stated
// subjects, excluding ones already started. A user without a
// personalization profile gets a purely level-weighted ranking.
func (s *courseServiceImpl) GetRecommendations(ctx context.Context, userID string) (*dto.CourseListResponse, error) {
	var interests []string
	personalization, err := s.personalizationRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load personalization", err)
	}
	if personalization != nil {
		interests = personalization.Subjects
	}

	excludeIDs, err := s.userCourseRepo.StartedCourseIDs(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load started courses", err)
	}

	candidates, err := s.courseRepo.ListAll(ctx, recommendCandidateLimit)
	if err != nil {
		return nil, domain.NewInternalError("failed to list candidate courses", err)
	}

	recommended := RecommendCourses(interests, candidates, excludeIDs)

	response := &dto.CourseListResponse{Courses: make([]dto.CourseResponse, 0, len(recommended))}
	for _, c := range recommended {
		response.Courses = append(response.Courses, toCourseResponse(c))
	}
	return response, nil
}

func toCourseResponse(c domain.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		Provider:        c.Provider,
		ExternalURL:     c.ExternalURL,
		ThumbnailURL:    c.ThumbnailURL,
		Category:        c.Category,
		DifficultyLevel: string(c.Level),
		Tags:            c.Tags,
		DurationHours:   c.DurationHours,
		Rating:          c.Rating,
	}
}
