package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"prepdeck/internal/domain"
	"prepdeck/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSessionTestDB creates a new sqlx.DB instance and sqlmock for session repository testing.
func setupSessionTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

var sessionColumns = []string{
	"id", "user_id", "topic", "category", "difficulty", "question_count",
	"time_per_question", "questions", "total_score", "completed",
	"total_time_spent", "created_at", "updated_at",
}

// --- Tests for Converter Functions ---

func TestSessionModelRoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	domainSession := &domain.InterviewSession{
		ID:              "session-1",
		UserID:          "user-1",
		Topic:           "Go",
		Category:        domain.CategoryTechnical,
		Difficulty:      domain.DifficultyIntermediate,
		QuestionCount:   2,
		TimePerQuestion: 60,
		Questions: []domain.Question{
			{Question: "What is a goroutine?", UserAnswer: "A lightweight thread", Score: 7},
			{Question: "What is a channel?"},
		},
		TotalScore:     7,
		Completed:      true,
		TotalTimeSpent: 42,
		CreatedAt:      now,
	}

	model := models.SessionFromDomain(domainSession)
	assert.Equal(t, 1, model.Completed)
	assert.Equal(t, "technical", model.Category)

	back := model.ToDomain()
	assert.Equal(t, domainSession.ID, back.ID)
	assert.Equal(t, domainSession.Category, back.Category)
	assert.Equal(t, domainSession.Questions, back.Questions)
	assert.True(t, back.Completed)
}

// --- Tests for Adapter Methods ---

func TestSQLXSessionRepository_GetByID_Success(t *testing.T) {
	db, mock := setupSessionTestDB(t)
	repo := NewSQLXSessionRepository(db)
	defer db.Close()

	sessionID := "session-test-id"
	now := time.Now()
	questionsJSON := `[{"question":"What is a goroutine?","userAnswer":"A lightweight thread","score":7}]`

	rows := sqlmock.NewRows(sessionColumns).
		AddRow(sessionID, "user-1", "Go", "technical", "intermediate", 1, 60,
			questionsJSON, 7, 1, 42, now, now)

	mock.ExpectPrepare(`SELECT \* FROM interview_sessions WHERE id =`).
		ExpectQuery().
		WithArgs(sessionID).
		WillReturnRows(rows)

	session, err := repo.GetByID(context.Background(), sessionID)

	assert.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, sessionID, session.ID)
	assert.Equal(t, domain.CategoryTechnical, session.Category)
	assert.True(t, session.Completed)
	require.Len(t, session.Questions, 1)
	assert.Equal(t, "What is a goroutine?", session.Questions[0].Question)
	assert.Equal(t, 7, session.Questions[0].Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSessionRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupSessionTestDB(t)
	repo := NewSQLXSessionRepository(db)
	defer db.Close()

	mock.ExpectPrepare(`SELECT \* FROM interview_sessions WHERE id =`).
		ExpectQuery().
		WithArgs("missing-id").
		WillReturnError(sql.ErrNoRows)

	session, err := repo.GetByID(context.Background(), "missing-id")

	// The adapter maps sql.ErrNoRows to (nil, nil).
	assert.NoError(t, err)
	assert.Nil(t, session)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSessionRepository_Create_Success(t *testing.T) {
	db, mock := setupSessionTestDB(t)
	repo := NewSQLXSessionRepository(db)
	defer db.Close()

	session := &domain.InterviewSession{
		ID:              "new-session-id",
		UserID:          "user-1",
		Topic:           "Go",
		Category:        domain.CategoryTechnical,
		Difficulty:      domain.DifficultyIntermediate,
		QuestionCount:   1,
		TimePerQuestion: 60,
		Questions:       []domain.Question{{Question: "What is a goroutine?"}},
		CreatedAt:       time.Now(),
	}

	mock.ExpectExec(`INSERT INTO interview_sessions`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), session)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSessionRepository_Update_NoRowsAffected(t *testing.T) {
	db, mock := setupSessionTestDB(t)
	repo := NewSQLXSessionRepository(db)
	defer db.Close()

	session := &domain.InterviewSession{
		ID:        "missing-id",
		UserID:    "user-1",
		CreatedAt: time.Now(),
	}

	mock.ExpectExec(`UPDATE interview_sessions`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), session)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no session found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSessionRepository_ListRecentByUser(t *testing.T) {
	db, mock := setupSessionTestDB(t)
	repo := NewSQLXSessionRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(sessionColumns).
		AddRow("s2", "user-1", "Go", "technical", "intermediate", 1, 60, "[]", 5, 1, 30, now, now).
		AddRow("s1", "user-1", "Go", "technical", "intermediate", 1, 60, "[]", 8, 1, 45, now.Add(-time.Hour), now)

	mock.ExpectPrepare(`SELECT \* FROM interview_sessions WHERE user_id =`).
		ExpectQuery().
		WithArgs("user-1", 2).
		WillReturnRows(rows)

	sessions, err := repo.ListRecentByUser(context.Background(), "user-1", 2)

	assert.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s2", sessions[0].ID)
	assert.Equal(t, "s1", sessions[1].ID)
	assert.Empty(t, sessions[0].Questions)
	assert.NoError(t, mock.ExpectationsWereMet())
}
