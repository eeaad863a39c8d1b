package models

import (
	"database/sql"
	"time"

	"prepdeck/internal/domain"
	"prepdeck/internal/util"
)

// StudyResource is the database row for one catalog entry.
type StudyResource struct {
	ID          string         `db:"ID"` // ULID
	Title       string         `db:"TITLE"`
	Description sql.NullString `db:"DESCRIPTION"`
	Category    string         `db:"CATEGORY"`
	Type        string         `db:"RESOURCE_TYPE"`
	URL         string         `db:"URL"`
	Difficulty  string         `db:"DIFFICULTY"`
	Tags        StringSlice    `db:"TAGS"`
	IsActive    int            `db:"IS_ACTIVE"`
	CreatedAt   time.Time      `db:"CREATED_AT"`
}

// ToDomain converts the row to its domain representation.
func (m *StudyResource) ToDomain() *domain.StudyResource {
	return &domain.StudyResource{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description.String,
		Category:    m.Category,
		Type:        domain.ResourceType(m.Type),
		URL:         m.URL,
		Difficulty:  domain.Difficulty(m.Difficulty),
		Tags:        []string(m.Tags),
		IsActive:    m.IsActive != 0,
		CreatedAt:   m.CreatedAt,
	}
}

// ResourceFromDomain converts a domain resource to its database row.
func ResourceFromDomain(r *domain.StudyResource) *StudyResource {
	isActive := 0
	if r.IsActive {
		isActive = 1
	}
	return &StudyResource{
		ID:          r.ID,
		Title:       r.Title,
		Description: util.StringToNullString(r.Description),
		Category:    r.Category,
		Type:        string(r.Type),
		URL:         r.URL,
		Difficulty:  string(r.Difficulty),
		Tags:        StringSlice(r.Tags),
		IsActive:    isActive,
		CreatedAt:   r.CreatedAt,
	}
}
