package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"versora/internal/domain"
	"versora/internal/repository/models"
	"versora/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuizRecordRepository persists finalized quiz results.
type QuizRecordRepository interface {
	Save(ctx context.Context, record *domain.QuizRecord) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.QuizRecord, error)
}

type sqlxQuizRecordRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRecordRepository creates a new QuizRecordRepository backed by sqlx.
func NewSQLXQuizRecordRepository(db *sqlx.DB) QuizRecordRepository {
	return &sqlxQuizRecordRepository{db: db}
}

func (r *sqlxQuizRecordRepository) Save(ctx context.Context, record *domain.QuizRecord) error {
	if record.ID == "" {
		record.ID = util.NewULID()
	}
	if record.CompletedAt.IsZero() {
		record.CompletedAt = time.Now()
	}

	questionsJSON, err := json.Marshal(record.Questions)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz questions: %w", err)
	}

	row := &models.QuizRecord{
		ID:             record.ID,
		UserID:         record.UserID,
		Title:          record.Title,
		Type:           string(record.Type),
		CourseID:       util.StringToNullString(record.CourseID),
		Questions:      models.JSONText(questionsJSON),
		Answers:        models.IntSlice(record.Answers),
		Score:          record.Score,
		TotalQuestions: record.TotalQuestions,
		ElapsedSeconds: record.ElapsedSeconds,
		CompletedAt:    record.CompletedAt,
	}

	query := `INSERT INTO quizzes (id, user_id, title, type, course_id, questions, answers, score, total_questions, elapsed_seconds, completed_at)
	          VALUES (:id, :user_id, :title, :type, :course_id, :questions, :answers, :score, :total_questions, :elapsed_seconds, :completed_at)`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to save quiz record: %w", err)
	}
	return nil
}

func (r *sqlxQuizRecordRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.QuizRecord, error) {
	var rows []models.QuizRecord
	query := `SELECT * FROM quizzes WHERE user_id = :user_id ORDER BY completed_at DESC LIMIT :limit`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for ListByUser: %w", err)
	}
	defer stmt.Close()

	args := map[string]interface{}{"user_id": userID, "limit": limit}
	if err := stmt.SelectContext(ctx, &rows, args); err != nil {
		return nil, fmt.Errorf("failed to list quiz records: %w", err)
	}

	records := make([]domain.QuizRecord, 0, len(rows))
	for i := range rows {
		record, err := toDomainQuizRecord(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

func toDomainQuizRecord(m *models.QuizRecord) (*domain.QuizRecord, error) {
	var questions []domain.QuizQuestion
	if len(m.Questions) > 0 {
		if err := json.Unmarshal(m.Questions, &questions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quiz questions for record %s: %w", m.ID, err)
		}
	}
	return &domain.QuizRecord{
		ID:             m.ID,
		UserID:         m.UserID,
		Title:          m.Title,
		Type:           domain.SubjectMode(m.Type),
		CourseID:       util.NullStringToString(m.CourseID),
		Questions:      questions,
		Answers:        []int(m.Answers),
		Score:          m.Score,
		TotalQuestions: m.TotalQuestions,
		ElapsedSeconds: m.ElapsedSeconds,
		CompletedAt:    m.CompletedAt,
	}, nil
}
