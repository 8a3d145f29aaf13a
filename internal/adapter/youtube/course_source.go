package youtube

import (
	"context"
	"fmt"

	"versora/internal/config"
	"versora/internal/domain"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// CourseSource implements domain.CourseSource against the YouTube Data API.
// Search is restricted to long-form, high-definition videos so results look
// like courses rather than clips.
type CourseSource struct {
	service *youtube.Service
	logger  *zap.Logger
}

// NewCourseSource creates a new YouTube-backed course source. The API key is
// injected configuration with no default.
func NewCourseSource(ctx context.Context, cfg config.YouTubeConfig, logger *zap.Logger) (*CourseSource, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("youtube api key cannot be empty")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	logger.Info("Initialized YouTube course source")
	return &CourseSource{service: service, logger: logger}, nil
}

// Search returns raw video results mapped to Course records. Category and
// level classification happens in the service layer; duration and rating are
// left unset because the search API does not report them.
func (s *CourseSource) Search(ctx context.Context, query string, maxResults int64) ([]domain.Course, error) {
	call := s.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		VideoDuration("long").
		VideoDefinition("high").
		MaxResults(maxResults)

	resp, err := call.Context(ctx).Do()
	if err != nil {
		s.logger.Error("YouTube search failed", zap.Error(err), zap.String("query", query))
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	courses := make([]domain.Course, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		courses = append(courses, domain.Course{
			ID:           "yt_" + item.Id.VideoId,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Provider:     "YouTube",
			ExternalURL:  "https://www.youtube.com/watch?v=" + item.Id.VideoId,
			ThumbnailURL: thumbnailURL(item.Snippet),
		})
	}

	s.logger.Debug("YouTube search completed",
		zap.String("query", query),
		zap.Int("results", len(courses)),
	)
	return courses, nil
}

func thumbnailURL(snippet *youtube.SearchResultSnippet) string {
	if snippet.Thumbnails == nil {
		return ""
	}
	if snippet.Thumbnails.High != nil {
		return snippet.Thumbnails.High.Url
	}
	if snippet.Thumbnails.Default != nil {
		return snippet.Thumbnails.Default.Url
	}
	return ""
}

var _ domain.CourseSource = (*CourseSource)(nil)
