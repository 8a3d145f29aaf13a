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

// PersonalizationRepository stores the learner profile, one row per user.
type PersonalizationRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Personalization, error)
	Upsert(ctx context.Context, p *domain.Personalization) error
}

type sqlxPersonalizationRepository struct {
	db *sqlx.DB
}

// NewSQLXPersonalizationRepository creates a new PersonalizationRepository backed by sqlx.
func NewSQLXPersonalizationRepository(db *sqlx.DB) PersonalizationRepository {
	return &sqlxPersonalizationRepository{db: db}
}

func (r *sqlxPersonalizationRepository) GetByUserID(ctx context.Context, userID string) (*domain.Personalization, error) {
	var row models.Personalization
	query := `SELECT * FROM personalization WHERE user_id = :user_id`

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
		return nil, fmt.Errorf("failed to get personalization: %w", err)
	}

	return &domain.Personalization{
		UserID:         row.UserID,
		Age:            row.Age,
		Goals:          []string(row.Goals),
		SkillLevel:     row.SkillLevel,
		Subjects:       []string(row.Subjects),
		LearningStyle:  row.LearningStyle,
		TimeCommitment: row.TimeCommitment,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

func (r *sqlxPersonalizationRepository) Upsert(ctx context.Context, p *domain.Personalization) error {
	row := &models.Personalization{
		UserID:         p.UserID,
		Age:            p.Age,
		Goals:          models.StringSlice(p.Goals),
		SkillLevel:     p.SkillLevel,
		Subjects:       models.StringSlice(p.Subjects),
		LearningStyle:  p.LearningStyle,
		TimeCommitment: p.TimeCommitment,
		UpdatedAt:      time.Now(),
	}

	query := `INSERT INTO personalization (user_id, age, goals, skill_level, subjects, learning_style, time_commitment, updated_at)
	          VALUES (:user_id, :age, :goals, :skill_level, :subjects, :learning_style, :time_commitment, :updated_at)
	          ON CONFLICT (user_id) DO UPDATE SET
	              age = EXCLUDED.age,
	              goals = EXCLUDED.goals,
	              skill_level = EXCLUDED.skill_level,
	              subjects = EXCLUDED.subjects,
	              learning_style = EXCLUDED.learning_style,
	              time_commitment = EXCLUDED.time_commitment,
	              updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to upsert personalization: %w", err)
	}
	return nil
}
