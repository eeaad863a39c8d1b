package repository

import (
	"context"
	"fmt"
	"strings"

	"prepdeck/internal/domain"
	"prepdeck/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxResourceRepository implements domain.ResourceRepository using sqlx.
type sqlxResourceRepository struct {
	db *sqlx.DB
}

// NewSQLXResourceRepository creates a new instance of sqlxResourceRepository.
func NewSQLXResourceRepository(db *sqlx.DB) domain.ResourceRepository {
	return &sqlxResourceRepository{db: db}
}

// ListActive returns the active catalog entries matching the filter,
// newest first. Empty or "all" filter fields match everything.
func (r *sqlxResourceRepository) ListActive(ctx context.Context, filter domain.ResourceFilter) ([]*domain.StudyResource, error) {
	conditions := []string{"is_active = 1"}
	args := map[string]interface{}{}

	if filter.Category != "" && filter.Category != "all" {
		conditions = append(conditions, "category = :category")
		args["category"] = filter.Category
	}
	if filter.Type != "" && filter.Type != "all" {
		conditions = append(conditions, "resource_type = :resource_type")
		args["resource_type"] = filter.Type
	}
	if filter.Difficulty != "" && filter.Difficulty != "all" {
		conditions = append(conditions, "difficulty = :difficulty")
		args["difficulty"] = filter.Difficulty
	}

	query := fmt.Sprintf(`SELECT * FROM study_resources WHERE %s ORDER BY created_at DESC`,
		strings.Join(conditions, " AND "))

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare resource list query: %w", err)
	}
	defer stmt.Close()

	var rows []models.StudyResource
	if err := stmt.SelectContext(ctx, &rows, args); err != nil {
		return nil, fmt.Errorf("failed to list study resources: %w", err)
	}

	resources := make([]*domain.StudyResource, len(rows))
	for i := range rows {
		resources[i] = rows[i].ToDomain()
	}
	return resources, nil
}

func (r *sqlxResourceRepository) Create(ctx context.Context, resource *domain.StudyResource) error {
	model := models.ResourceFromDomain(resource)

	query := `INSERT INTO study_resources (id, title, description, category, resource_type, url, difficulty, tags, is_active, created_at)
	          VALUES (:id, :title, :description, :category, :resource_type, :url, :difficulty, :tags, :is_active, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create study resource: %w", err)
	}
	return nil
}
