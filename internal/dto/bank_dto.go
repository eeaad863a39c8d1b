package dto

import (
	"time"

	"prepdeck/internal/domain"
)

// CreateBankRequest represents the request body for creating a question bank.
type CreateBankRequest struct {
	Title       string                `json:"title" validate:"required"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Difficulty  string                `json:"difficulty"`
	IsPublic    bool                  `json:"is_public"`
	Questions   []BankQuestionRequest `json:"questions"`
}

// BankQuestionRequest is one question/answer pair in a bank request.
type BankQuestionRequest struct {
	Question       string `json:"question" validate:"required"`
	ExpectedAnswer string `json:"expected_answer" validate:"required"`
	Category       string `json:"category"`
	Difficulty     string `json:"difficulty"`
}

// UpdateVisibilityRequest toggles a bank between public and private.
type UpdateVisibilityRequest struct {
	IsPublic bool `json:"is_public"`
}

// QuickSaveRequest saves a single question into a bank mid-interview.
type QuickSaveRequest struct {
	BankID     string `json:"bank_id" validate:"required"`
	Question   string `json:"question" validate:"required"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

// BankQuestionResponse is one stored question of a bank.
type BankQuestionResponse struct {
	Question       string    `json:"question"`
	ExpectedAnswer string    `json:"expected_answer"`
	Category       string    `json:"category"`
	Difficulty     string    `json:"difficulty"`
	CreatedAt      time.Time `json:"created_at"`
}

// BankResponse represents a question bank in the API response.
type BankResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Category    string                 `json:"category"`
	Difficulty  string                 `json:"difficulty"`
	IsPublic    bool                   `json:"is_public"`
	CreatorID   string                 `json:"creator_id"`
	Questions   []BankQuestionResponse `json:"questions"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// BankListResponse wraps a list of banks.
type BankListResponse struct {
	Banks []BankResponse `json:"banks"`
}

// NewBankResponse maps a domain bank to its API representation.
func NewBankResponse(b *domain.QuestionBank) BankResponse {
	questions := make([]BankQuestionResponse, len(b.Questions))
	for i, q := range b.Questions {
		questions[i] = BankQuestionResponse{
			Question:       q.Question,
			ExpectedAnswer: q.ExpectedAnswer,
			Category:       string(q.Category),
			Difficulty:     string(q.Difficulty),
			CreatedAt:      q.CreatedAt,
		}
	}
	return BankResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Category:    string(b.Category),
		Difficulty:  string(b.Difficulty),
		IsPublic:    b.IsPublic,
		CreatorID:   b.CreatorID,
		Questions:   questions,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
