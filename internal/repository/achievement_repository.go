package repository

import (
	"context"
	"fmt"
	"time"

	"versora/internal/domain"
	"versora/internal/repository/models"
	"versora/internal/util"

	"github.com/jmoiron/sqlx"
)

// AchievementRepository stores earned badges.
type AchievementRepository interface {
	Create(ctx context.Context, achievement *domain.Achievement) error
	ListByUser(ctx context.Context, userID string) ([]domain.Achievement, error)
}

type sqlxAchievementRepository struct {
	db *sqlx.DB
}

// NewSQLXAchievementRepository creates a new AchievementRepository backed by sqlx.
func NewSQLXAchievementRepository(db *sqlx.DB) AchievementRepository {
	return &sqlxAchievementRepository{db: db}
}

func (r *sqlxAchievementRepository) Create(ctx context.Context, achievement *domain.Achievement) error {
	if achievement.ID == "" {
		achievement.ID = util.NewULID()
	}
	if achievement.EarnedAt.IsZero() {
		achievement.EarnedAt = time.Now()
	}

	row := &models.Achievement{
		ID:       achievement.ID,
		UserID:   achievement.UserID,
		Kind:     achievement.Kind,
		Title:    achievement.Title,
		Detail:   achievement.Detail,
		EarnedAt: achievement.EarnedAt,
	}

	query := `INSERT INTO achievements (id, user_id, kind, title, detail, earned_at)
	          VALUES (:id, :user_id, :kind, :title, :detail, :earned_at)`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to create achievement: %w", err)
	}
	return nil
}

func (r *sqlxAchievementRepository) ListByUser(ctx context.Context, userID string) ([]domain.Achievement, error) {
	var rows []models.Achievement
	query := `SELECT * FROM achievements WHERE user_id = :user_id ORDER BY earned_at DESC`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for ListByUser: %w", err)
	}
	defer stmt.Close()

	if err := stmt.SelectContext(ctx, &rows, map[string]interface{}{"user_id": userID}); err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	achievements := make([]domain.Achievement, 0, len(rows))
	for _, row := range rows {
		achievements = append(achievements, domain.Achievement{
			ID:       row.ID,
			UserID:   row.UserID,
			Kind:     row.Kind,
			Title:    row.Title,
			Detail:   row.Detail,
			EarnedAt: row.EarnedAt,
		})
	}
	return achievements, nil
}
