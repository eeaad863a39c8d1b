package domain

import (
	"strings"
	"time"
)

// BankQuestion is a curated question/expected-answer pair inside a bank.
type BankQuestion struct {
	Question       string     `json:"question"`
	ExpectedAnswer string     `json:"expectedAnswer"`
	Category       Category   `json:"category"`
	Difficulty     Difficulty `json:"difficulty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// QuestionBank is a user-curated, optionally public collection of
// question/expected-answer pairs. Independent of session scoring.
type QuestionBank struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Difficulty  Difficulty
	IsPublic    bool
	CreatorID   string
	Questions   []BankQuestion
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewQuestionBank creates a new QuestionBank instance
func NewQuestionBank(id, creatorID, title, description string, category Category, difficulty Difficulty, isPublic bool) *QuestionBank {
	now := time.Now()
	return &QuestionBank{
		ID:          id,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Category:    category,
		Difficulty:  difficulty,
		IsPublic:    isPublic,
		CreatorID:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate validates the question bank
func (b *QuestionBank) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return NewInvalidInputError("title is required")
	}
	if b.CreatorID == "" {
		return NewInvalidInputError("creator is required")
	}
	return nil
}

// AccessibleBy reports whether the given user may read this bank.
func (b *QuestionBank) AccessibleBy(userID string) bool {
	return b.IsPublic || b.CreatorID == userID
}

// HasQuestion reports whether an equivalent question text is already
// present, compared case-insensitively after trimming.
func (b *QuestionBank) HasQuestion(text string) bool {
	needle := strings.ToLower(strings.TrimSpace(text))
	for _, q := range b.Questions {
		if strings.ToLower(strings.TrimSpace(q.Question)) == needle {
			return true
		}
	}
	return false
}

// AddQuestion appends a new pair to the bank.
func (b *QuestionBank) AddQuestion(question, expectedAnswer string, category Category, difficulty Difficulty) {
	b.Questions = append(b.Questions, BankQuestion{
		Question:       strings.TrimSpace(question),
		ExpectedAnswer: strings.TrimSpace(expectedAnswer),
		Category:       category,
		Difficulty:     difficulty,
		CreatedAt:      time.Now(),
	})
	b.UpdatedAt = time.Now()
}
