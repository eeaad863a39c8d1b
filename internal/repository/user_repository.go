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

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func (r *sqlxUserRepository) Create(ctx context.Context, user *domain.User) error {
	model := models.UserFromDomain(user)
	now := time.Now()
	model.CreatedAt = now
	model.UpdatedAt = now

	query := `INSERT INTO users (id, name, email, password_hash, google_id, failed_attempts, lock_until, refresh_token, created_at, updated_at)
	          VALUES (:id, :name, :email, :password_hash, :google_id, :failed_attempts, :lock_until, :refresh_token, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *sqlxUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE id = :id`, map[string]interface{}{"id": id})
}

func (r *sqlxUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE email = :email`, map[string]interface{}{"email": email})
}

func (r *sqlxUserRepository) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE google_id = :google_id`, map[string]interface{}{"google_id": googleID})
}

func (r *sqlxUserRepository) getOne(ctx context.Context, query string, args map[string]interface{}) (*domain.User, error) {
	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare user query: %w", err)
	}
	defer stmt.Close()

	var model models.User
	err = stmt.GetContext(ctx, &model, args)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *sqlxUserRepository) Update(ctx context.Context, user *domain.User) error {
	model := models.UserFromDomain(user)
	model.UpdatedAt = time.Now()

	query := `UPDATE users
	          SET name = :name,
	              email = :email,
	              password_hash = :password_hash,
	              google_id = :google_id,
	              failed_attempts = :failed_attempts,
	              lock_until = :lock_until,
	              refresh_token = :refresh_token,
	              updated_at = :updated_at
	          WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("no user found with id %s", user.ID)
	}
	return nil
}
