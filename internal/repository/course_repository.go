package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"versora/internal/domain"
	"versora/internal/repository/models"
	"versora/internal/util"

	"github.com/jmoiron/sqlx"
)

// CourseRepository defines data operations for the course catalog.
type CourseRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	ListAll(ctx context.Context, limit int) ([]domain.Course, error)
	// UpsertExternal stores a provider-sourced course, keyed by its
	// provider-derived id, so search results can be enrolled against.
	UpsertExternal(ctx context.Context, course *domain.Course) error
}

type sqlxCourseRepository struct {
	db *sqlx.DB
}

// NewSQLXCourseRepository creates a new CourseRepository backed by sqlx.
func NewSQLXCourseRepository(db *sqlx.DB) CourseRepository {
	return &sqlxCourseRepository{db: db}
}

func (r *sqlxCourseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	var course models.Course
	query := `SELECT * FROM courses WHERE id = :id`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetByID: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &course, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}
	return toDomainCourse(&course), nil
}

func (r *sqlxCourseRepository) ListAll(ctx context.Context, limit int) ([]domain.Course, error) {
	var rows []models.Course
	query := `SELECT * FROM courses ORDER BY created_at DESC LIMIT :limit`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for ListAll: %w", err)
	}
	defer stmt.Close()

	if err := stmt.SelectContext(ctx, &rows, map[string]interface{}{"limit": limit}); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	courses := make([]domain.Course, 0, len(rows))
	for i := range rows {
		courses = append(courses, *toDomainCourse(&rows[i]))
	}
	return courses, nil
}

func (r *sqlxCourseRepository) UpsertExternal(ctx context.Context, course *domain.Course) error {
	if course.ID == "" {
		course.ID = util.NewULID()
	}
	row := toModelCourse(course)
	row.UpdatedAt = time.Now()
	row.CreatedAt = row.UpdatedAt

	query := `INSERT INTO courses (id, title, description, provider, external_url, thumbnail_url, category, difficulty_level, tags, duration_hours, rating, created_at, updated_at)
	          VALUES (:id, :title, :description, :provider, :external_url, :thumbnail_url, :category, :difficulty_level, :tags, :duration_hours, :rating, :created_at, :updated_at)
	          ON CONFLICT (id) DO UPDATE SET
	              title = EXCLUDED.title,
	              description = EXCLUDED.description,
	              thumbnail_url = EXCLUDED.thumbnail_url,
	              category = EXCLUDED.category,
	              difficulty_level = EXCLUDED.difficulty_level,
	              tags = EXCLUDED.tags,
	              updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to upsert course: %w", err)
	}
	return nil
}

func toDomainCourse(m *models.Course) *domain.Course {
	course := &domain.Course{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description.String,
		Provider:     m.Provider.String,
		ExternalURL:  m.ExternalURL.String,
		ThumbnailURL: m.ThumbnailURL.String,
		Category:     m.Category,
		Level:        domain.CourseLevel(m.Level),
		Tags:         []string(m.Tags),
	}
	if m.DurationHours.Valid {
		course.DurationHours = int(m.DurationHours.Int64)
	}
	if m.Rating.Valid {
		course.Rating = m.Rating.Float64
	}
	return course
}

func toModelCourse(c *domain.Course) *models.Course {
	m := &models.Course{
		ID:           c.ID,
		Title:        c.Title,
		Description:  util.StringToNullString(c.Description),
		Provider:     util.StringToNullString(c.Provider),
		ExternalURL:  util.StringToNullString(c.ExternalURL),
		ThumbnailURL: util.StringToNullString(c.ThumbnailURL),
		Category:     c.Category,
		Level:        string(c.Level),
		Tags:         models.StringSlice(c.Tags),
	}
	if c.DurationHours > 0 {
		m.DurationHours = sql.NullInt64{Int64: int64(c.DurationHours), Valid: true}
	}
	if c.Rating > 0 {
		m.Rating = sql.NullFloat64{Float64: c.Rating, Valid: true}
	}
	return m
}
