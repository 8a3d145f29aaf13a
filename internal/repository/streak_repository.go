package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"versora/internal/domain"
	"versora/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// StreakRepository stores one daily-activity streak per user.
type StreakRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Streak, error)
	Upsert(ctx context.Context, streak *domain.Streak) error
}

type sqlxStreakRepository struct {
	db *sqlx.DB
}

// NewSQLXStreakRepository creates a new StreakRepository backed by sqlx.
func NewSQLXStreakRepository(db *sqlx.DB) StreakRepository {
	return &sqlxStreakRepository{db: db}
}

func (r *sqlxStreakRepository) GetByUserID(ctx context.Context, userID string) (*domain.Streak, error) {
	var row models.Streak
	query := `SELECT * FROM streaks WHERE user_id = :user_id`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetByUserID: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &row, map[string]interface{}{"user_id": userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}

	return &domain.Streak{
		UserID:           row.UserID,
		CurrentStreak:    row.CurrentStreak,
		LongestStreak:    row.LongestStreak,
		LastActivityDate: row.LastActivityDate,
	}, nil
}

func (r *sqlxStreakRepository) Upsert(ctx context.Context, streak *domain.Streak) error {
	row := &models.Streak{
		UserID:           streak.UserID,
		CurrentStreak:    streak.CurrentStreak,
		LongestStreak:    streak.LongestStreak,
		LastActivityDate: streak.LastActivityDate,
		UpdatedAt:        time.Now(),
	}

	query := `INSERT INTO streaks (user_id, current_streak, longest_streak, last_activity_date, updated_at)
	          VALUES (:user_id, :current_streak, :longest_streak, :last_activity_date, :updated_at)
	          ON CONFLICT (user_id) DO UPDATE SET
	              current_streak = EXCLUDED.current_streak,
	              longest_streak = EXCLUDED.longest_streak,
	              last_activity_date = EXCLUDED.last_activity_date,
	              updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to upsert streak: %w", err)
	}
	return nil
}
