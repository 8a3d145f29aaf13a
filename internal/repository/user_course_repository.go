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

// UserCourseRepository tracks enrollment, progress and bookmarks.
type UserCourseRepository interface {
	Start(ctx context.Context, userID, courseID string) (*domain.UserCourse, error)
	UpdateProgress(ctx context.Context, userID, courseID string, progress int) error
	SetBookmark(ctx context.Context, userID, courseID string, bookmarked bool) error
	// ListStarted returns courses with progress > 0, most recent first.
	ListStarted(ctx context.Context, userID string) ([]domain.UserCourse, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.UserCourse, error)
	StartedCourseIDs(ctx context.Context, userID string) ([]string, error)
}

type sqlxUserCourseRepository struct {
	db *sqlx.DB
}

// NewSQLXUserCourseRepository creates a new UserCourseRepository backed by sqlx.
func NewSQLXUserCourseRepository(db *sqlx.DB) UserCourseRepository {
	return &sqlxUserCourseRepository{db: db}
}

func (r *sqlxUserCourseRepository) Start(ctx context.Context, userID, courseID string) (*domain.UserCourse, error) {
	now := time.Now()
	row := &models.UserCourse{
		ID:        util.NewULID(),
		UserID:    userID,
		CourseID:  courseID,
		StartedAt: now,
		UpdatedAt: now,
	}

	query := `INSERT INTO user_courses (id, user_id, course_id, progress_percentage, bookmarked, started_at, updated_at)
	          VALUES (:id, :user_id, :course_id, :progress_percentage, :bookmarked, :started_at, :updated_at)
	          ON CONFLICT (user_id, course_id) DO NOTHING`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return nil, fmt.Errorf("failed to start course: %w", err)
	}
	return toDomainUserCourse(row), nil
}

func (r *sqlxUserCourseRepository) UpdateProgress(ctx context.Context, userID, courseID string, progress int) error {
	query := `UPDATE user_courses SET progress_percentage = :progress, updated_at = :updated_at
	          WHERE user_id = :user_id AND course_id = :course_id`

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"progress":   progress,
		"updated_at": time.Now(),
		"user_id":    userID,
		"course_id":  courseID,
	})
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *sqlxUserCourseRepository) SetBookmark(ctx context.Context, userID, courseID string, bookmarked bool) error {
	query := `UPDATE user_courses SET bookmarked = :bookmarked, updated_at = :updated_at
	          WHERE user_id = :user_id AND course_id = :course_id`

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"bookmarked": bookmarked,
		"updated_at": time.Now(),
		"user_id":    userID,
		"course_id":  courseID,
	})
	if err != nil {
		return fmt.Errorf("failed to set bookmark: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const userCourseSelect = `SELECT uc.id, uc.user_id, uc.course_id, uc.progress_percentage, uc.bookmarked, uc.started_at, uc.updated_at,
	       c.title AS course_title, c.category AS course_category, c.difficulty_level AS course_level
	  FROM user_courses uc
	  JOIN courses c ON c.id = uc.course_id`

func (r *sqlxUserCourseRepository) ListStarted(ctx context.Context, userID string) ([]domain.UserCourse, error) {
	var rows []models.UserCourse
	query := userCourseSelect + ` WHERE uc.user_id = :user_id AND uc.progress_percentage > 0 ORDER BY uc.started_at DESC`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for ListStarted: %w", err)
	}
	defer stmt.Close()

	if err := stmt.SelectContext(ctx, &rows, map[string]interface{}{"user_id": userID}); err != nil {
		return nil, fmt.Errorf("failed to list started courses: %w", err)
	}
	return toDomainUserCourses(rows), nil
}

func (r *sqlxUserCourseRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.UserCourse, error) {
	var rows []models.UserCourse
	query := userCourseSelect + ` WHERE uc.user_id = :user_id ORDER BY uc.updated_at DESC LIMIT :limit`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for ListByUser: %w", err)
	}
	defer stmt.Close()

	args := map[string]interface{}{"user_id": userID, "limit": limit}
	if err := stmt.SelectContext(ctx, &rows, args); err != nil {
		return nil, fmt.Errorf("failed to list user courses: %w", err)
	}
	return toDomainUserCourses(rows), nil
}

func (r *sqlxUserCourseRepository) StartedCourseIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	query := `SELECT course_id FROM user_courses WHERE user_id = :user_id AND progress_percentage > 0`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for StartedCourseIDs: %w", err)
	}
	defer stmt.Close()

	if err := stmt.SelectContext(ctx, &ids, map[string]interface{}{"user_id": userID}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list started course ids: %w", err)
	}
	return ids, nil
}

func toDomainUserCourse(m *models.UserCourse) *domain.UserCourse {
	uc := &domain.UserCourse{
		ID:                 m.ID,
		UserID:             m.UserID,
		CourseID:           m.CourseID,
		ProgressPercentage: m.ProgressPercentage,
		Bookmarked:         m.Bookmarked,
		StartedAt:          m.StartedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.CourseTitle.Valid {
		uc.Course = &domain.Course{
			ID:       m.CourseID,
			Title:    m.CourseTitle.String,
			Category: m.CourseCategory.String,
			Level:    domain.CourseLevel(m.CourseLevel.String),
		}
	}
	return uc
}

func toDomainUserCourses(rows []models.UserCourse) []domain.UserCourse {
	out := make([]domain.UserCourse, 0, len(rows))
	for i := range rows {
		out = append(out, *toDomainUserCourse(&rows[i]))
	}
	return out
}
