package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prepdeck/internal/domain"
	"prepdeck/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxSessionRepository implements domain.SessionRepository using sqlx.
type sqlxSessionRepository struct {
	db *sqlx.DB
}

// NewSQLXSessionRepository creates a new instance of sqlxSessionRepository.
func NewSQLXSessionRepository(db *sqlx.DB) domain.SessionRepository {
	return &sqlxSessionRepository{db: db}
}

func (r *sqlxSessionRepository) Create(ctx context.Context, session *domain.InterviewSession) error {
	model := models.SessionFromDomain(session)
	model.UpdatedAt = time.Now()

	query := `INSERT INTO interview_sessions (id, user_id, topic, category, difficulty, question_count, time_per_question, questions, total_score, completed, total_time_spent, created_at, updated_at)
	          VALUES (:id, :user_id, :topic, :category, :difficulty, :question_count, :time_per_question, :questions, :total_score, :completed, :total_time_spent, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create interview session: %w", err)
	}
	return nil
}

func (r *sqlxSessionRepository) GetByID(ctx context.Context, id string) (*domain.InterviewSession, error) {
	var model models.InterviewSession
	query := `SELECT * FROM interview_sessions WHERE id = :id`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for session GetByID: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &model, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *sqlxSessionRepository) Update(ctx context.Context, session *domain.InterviewSession) error {
	model := models.SessionFromDomain(session)
	model.UpdatedAt = time.Now()

	query := `UPDATE interview_sessions
	          SET questions = :questions,
	              total_score = :total_score,
	              completed = :completed,
	              total_time_spent = :total_time_spent,
	              updated_at = :updated_at
	          WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update interview session: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("no session found with id %s", session.ID)
	}
	return nil
}

func (r *sqlxSessionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.InterviewSession, error) {
	query := `SELECT * FROM interview_sessions WHERE user_id = :user_id ORDER BY created_at DESC`
	return r.list(ctx, query, map[string]interface{}{"user_id": userID})
}

func (r *sqlxSessionRepository) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*domain.InterviewSession, error) {
	query := `SELECT * FROM interview_sessions WHERE user_id = :user_id AND created_at >= :since ORDER BY created_at ASC`
	return r.list(ctx, query, map[string]interface{}{"user_id": userID, "since": since})
}

func (r *sqlxSessionRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.InterviewSession, error) {
	query := `SELECT * FROM interview_sessions WHERE user_id = :user_id ORDER BY created_at DESC FETCH FIRST :row_limit ROWS ONLY`
	return r.list(ctx, query, map[string]interface{}{"user_id": userID, "row_limit": limit})
}

func (r *sqlxSessionRepository) list(ctx context.Context, query string, args map[string]interface{}) ([]*domain.InterviewSession, error) {
	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare session list query: %w", err)
	}
	defer stmt.Close()

	var rows []models.InterviewSession
	if err := stmt.SelectContext(ctx, &rows, args); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*domain.InterviewSession, len(rows))
	for i := range rows {
		sessions[i] = rows[i].ToDomain()
	}
	return sessions, nil
}
