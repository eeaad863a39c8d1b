package models

import (
	"database/sql"
	"time"

	"prepdeck/internal/domain"
	"prepdeck/internal/util"
)

// QuestionBank is the database row for a curated question bank.
type QuestionBank struct {
	ID          string            `db:"ID"` // ULID
	Title       string            `db:"TITLE"`
	Description sql.NullString    `db:"DESCRIPTION"`
	Category    string            `db:"CATEGORY"`
	Difficulty  string            `db:"DIFFICULTY"`
	IsPublic    int               `db:"IS_PUBLIC"`
	CreatorID   string            `db:"CREATOR_ID"`
	Questions   BankQuestionSlice `db:"QUESTIONS"`
	CreatedAt   time.Time         `db:"CREATED_AT"`
	UpdatedAt   time.Time         `db:"UPDATED_AT"`
}

// ToDomain converts the row to its domain representation.
func (m *QuestionBank) ToDomain() *domain.QuestionBank {
	return &domain.QuestionBank{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description.String,
		Category:    domain.Category(m.Category),
		Difficulty:  domain.Difficulty(m.Difficulty),
		IsPublic:    m.IsPublic != 0,
		CreatorID:   m.CreatorID,
		Questions:   []domain.BankQuestion(m.Questions),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// BankFromDomain converts a domain bank to its database row.
func BankFromDomain(b *domain.QuestionBank) *QuestionBank {
	isPublic := 0
	if b.IsPublic {
		isPublic = 1
	}
	return &QuestionBank{
		ID:          b.ID,
		Title:       b.Title,
		Description: util.StringToNullString(b.Description),
		Category:    string(b.Category),
		Difficulty:  string(b.Difficulty),
		IsPublic:    isPublic,
		CreatorID:   b.CreatorID,
		Questions:   BankQuestionSlice(b.Questions),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
