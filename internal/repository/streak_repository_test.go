package repository

import (
	"context"
	"testing"
	"time"

	"versora/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a new sqlx.DB instance backed by sqlmock.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func TestStreakRepository_GetByUserID_Found(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXStreakRepository(db)

	lastActivity := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"user_id", "current_streak", "longest_streak", "last_activity_date", "updated_at"}).
		AddRow("user1", 3, 7, lastActivity, time.Now())

	mock.ExpectPrepare(`SELECT \* FROM streaks WHERE user_id`).
		ExpectQuery().
		WithArgs("user1").
		WillReturnRows(rows)

	streak, err := repo.GetByUserID(context.Background(), "user1")

	require.NoError(t, err)
	require.NotNil(t, streak)
	assert.Equal(t, 3, streak.CurrentStreak)
	assert.Equal(t, 7, streak.LongestStreak)
	assert.True(t, streak.LastActivityDate.Equal(lastActivity))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStreakRepository_GetByUserID_NotFoundReturnsNilNil(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXStreakRepository(db)

	mock.ExpectPrepare(`SELECT \* FROM streaks WHERE user_id`).
		ExpectQuery().
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "current_streak", "longest_streak", "last_activity_date", "updated_at"}))

	streak, err := repo.GetByUserID(context.Background(), "nobody")

	assert.NoError(t, err)
	assert.Nil(t, streak)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStreakRepository_Upsert(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXStreakRepository(db)

	mock.ExpectExec(`INSERT INTO streaks`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &domain.Streak{
		UserID:           "user1",
		CurrentStreak:    4,
		LongestStreak:    4,
		LastActivityDate: time.Now(),
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
