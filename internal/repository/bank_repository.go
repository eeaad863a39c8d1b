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

// sqlxBankRepository implements domain.BankRepository using sqlx.
type sqlxBankRepository struct {
	db *sqlx.DB
}

// NewSQLXBankRepository creates a new instance of sqlxBankRepository.
func NewSQLXBankRepository(db *sqlx.DB) domain.BankRepository {
	return &sqlxBankRepository{db: db}
}

func (r *sqlxBankRepository) Create(ctx context.Context, bank *domain.QuestionBank) error {
	model := models.BankFromDomain(bank)

	query := `INSERT INTO question_banks (id, title, description, category, difficulty, is_public, creator_id, questions, created_at, updated_at)
	          VALUES (:id, :title, :description, :category, :difficulty, :is_public, :creator_id, :questions, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create question bank: %w", err)
	}
	return nil
}

func (r *sqlxBankRepository) GetByID(ctx context.Context, id string) (*domain.QuestionBank, error) {
	var model models.QuestionBank
	query := `SELECT * FROM question_banks WHERE id = :id`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for bank GetByID: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &model, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bank by id: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *sqlxBankRepository) Update(ctx context.Context, bank *domain.QuestionBank) error {
	model := models.BankFromDomain(bank)
	model.UpdatedAt = time.Now()

	query := `UPDATE question_banks
	          SET title = :title,
	              description = :description,
	              category = :category,
	              difficulty = :difficulty,
	              is_public = :is_public,
	              questions = :questions,
	              updated_at = :updated_at
	          WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update question bank: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("no bank found with id %s", bank.ID)
	}
	return nil
}

func (r *sqlxBankRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM question_banks WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete question bank: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("no bank found with id %s", id)
	}
	return nil
}

func (r *sqlxBankRepository) ListByCreator(ctx context.Context, creatorID string) ([]*domain.QuestionBank, error) {
	query := `SELECT * FROM question_banks WHERE creator_id = :creator_id ORDER BY created_at DESC`
	return r.list(ctx, query, map[string]interface{}{"creator_id": creatorID})
}

func (r *sqlxBankRepository) ListPublic(ctx context.Context) ([]*domain.QuestionBank, error) {
	query := `SELECT * FROM question_banks WHERE is_public = 1 ORDER BY created_at DESC`
	return r.list(ctx, query, map[string]interface{}{})
}

func (r *sqlxBankRepository) list(ctx context.Context, query string, args map[string]interface{}) ([]*domain.QuestionBank, error) {
	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare bank list query: %w", err)
	}
	defer stmt.Close()

	var rows []models.QuestionBank
	if err := stmt.SelectContext(ctx, &rows, args); err != nil {
		return nil, fmt.Errorf("failed to list question banks: %w", err)
	}

	banks := make([]*domain.QuestionBank, len(rows))
	for i := range rows {
		banks[i] = rows[i].ToDomain()
	}
	return banks, nil
}
