package service

import (
	"context"
	"strings"

	"prepdeck/internal/domain"
	"prepdeck/internal/dto"
	"prepdeck/internal/logger"
	"prepdeck/internal/util"

	"go.uber.org/zap"
)

// BankService manages user-curated question banks.
type BankService interface {
	Create(ctx context.Context, userID string, req dto.CreateBankRequest) (*dto.BankResponse, error)
	GetByID(ctx context.Context, userID, bankID string) (*dto.BankResponse, error)
	ListMine(ctx context.Context, userID string) ([]dto.BankResponse, error)
	ListPublic(ctx context.Context) ([]dto.BankResponse, error)
	UpdateVisibility(ctx context.Context, userID, bankID string, isPublic bool) (*dto.BankResponse, error)
	AddQuestion(ctx context.Context, userID, bankID string, req dto.BankQuestionRequest) (*dto.BankResponse, error)
	QuickSave(ctx context.Context, userID string, req dto.QuickSaveRequest) error
	Delete(ctx context.Context, userID, bankID string) error
}

type bankServiceImpl struct {
	bankRepo domain.BankRepository
}

// NewBankService creates a new instance of BankService.
func NewBankService(bankRepo domain.BankRepository) BankService {
	return &bankServiceImpl{bankRepo: bankRepo}
}

func (s *bankServiceImpl) Create(ctx context.Context, userID string, req dto.CreateBankRequest) (*dto.BankResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("title")}
	}

	category, _ := domain.ParseCategory(req.Category, domain.CategoryTechnical)
	difficulty, _ := domain.ParseDifficulty(req.Difficulty, domain.DifficultyIntermediate)

	bank := domain.NewQuestionBank(util.NewULID(), userID, req.Title, req.Description, category, difficulty, req.IsPublic)
	for _, q := range req.Questions {
		qCategory, _ := domain.ParseCategory(q.Category, category)
		qDifficulty, _ := domain.ParseDifficulty(q.Difficulty, difficulty)
		bank.AddQuestion(q.Question, q.ExpectedAnswer, qCategory, qDifficulty)
	}
	if err := bank.Validate(); err != nil {
		return nil, err
	}

	if err := s.bankRepo.Create(ctx, bank); err != nil {
		return nil, domain.NewInternalError("failed to create question bank", err)
	}

	logger.Get().Info("Question bank created",
		zap.String("bankID", bank.ID),
		zap.String("userID", userID),
		zap.Bool("isPublic", bank.IsPublic))

	resp := dto.NewBankResponse(bank)
	return &resp, nil
}

// GetByID returns a bank if it is public or owned by the caller.
func (s *bankServiceImpl) GetByID(ctx context.Context, userID, bankID string) (*dto.BankResponse, error) {
	bank, err := s.bankRepo.GetByID(ctx, bankID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load question bank", err)
	}
	if bank == nil {
		return nil, domain.NewBankNotFoundError(bankID)
	}
	if !bank.AccessibleBy(userID) {
		return nil, domain.NewForbiddenError("access denied")
	}
	resp := dto.NewBankResponse(bank)
	return &resp, nil
}

func (s *bankServiceImpl) ListMine(ctx context.Context, userID string) ([]dto.BankResponse, error) {
	banks, err := s.bankRepo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list question banks", err)
	}
	return toBankResponses(banks), nil
}

func (s *bankServiceImpl) ListPublic(ctx context.Context) ([]dto.BankResponse, error) {
	banks, err := s.bankRepo.ListPublic(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list public question banks", err)
	}
	return toBankResponses(banks), nil
}

func (s *bankServiceImpl) UpdateVisibility(ctx context.Context, userID, bankID string, isPublic bool) (*dto.BankResponse, error) {
	bank, err := s.ownedBank(ctx, userID, bankID)
	if err != nil {
		return nil, err
	}

	bank.IsPublic = isPublic
	if err := s.bankRepo.Update(ctx, bank); err != nil {
		return nil, domain.NewInternalError("failed to update question bank", err)
	}
	resp := dto.NewBankResponse(bank)
	return &resp, nil
}

func (s *bankServiceImpl) AddQuestion(ctx context.Context, userID, bankID string, req dto.BankQuestionRequest) (*dto.BankResponse, error) {
	var validationErrs domain.ValidationErrors
	if strings.TrimSpace(req.Question) == "" {
		validationErrs = append(validationErrs, domain.NewMissingFieldError("question"))
	}
	if strings.TrimSpace(req.ExpectedAnswer) == "" {
		validationErrs = append(validationErrs, domain.NewMissingFieldError("expected_answer"))
	}
	if len(validationErrs) > 0 {
		return nil, validationErrs
	}

	bank, err := s.ownedBank(ctx, userID, bankID)
	if err != nil {
		return nil, err
	}

	category, _ := domain.ParseCategory(req.Category, domain.CategoryTechnical)
	difficulty, _ := domain.ParseDifficulty(req.Difficulty, domain.DifficultyIntermediate)
	bank.AddQuestion(req.Question, req.ExpectedAnswer, category, difficulty)

	if err := s.bankRepo.Update(ctx, bank); err != nil {
		return nil, domain.NewInternalError("failed to save question", err)
	}
	resp := dto.NewBankResponse(bank)
	return &resp, nil
}

// QuickSave stores a session question into a bank with a placeholder
// answer. Saving an equivalent question twice is rejected.
func (s *bankServiceImpl) QuickSave(ctx context.Context, userID string, req dto.QuickSaveRequest) error {
	var validationErrs domain.ValidationErrors
	if strings.TrimSpace(req.Question) == "" {
		validationErrs = append(validationErrs, domain.NewMissingFieldError("question"))
	}
	if req.BankID == "" {
		validationErrs = append(validationErrs, domain.NewMissingFieldError("bank_id"))
	}
	if len(validationErrs) > 0 {
		return validationErrs
	}

	bank, err := s.ownedBank(ctx, userID, req.BankID)
	if err != nil {
		return err
	}
	if bank.HasQuestion(req.Question) {
		return domain.NewError(domain.CodeDuplicateEntry, "Question already exists in this bank", nil)
	}

	category, _ := domain.ParseCategory(req.Category, domain.CategoryTechnical)
	difficulty, _ := domain.ParseDifficulty(req.Difficulty, domain.DifficultyIntermediate)
	bank.AddQuestion(req.Question, "Answer to be provided later", category, difficulty)

	if err := s.bankRepo.Update(ctx, bank); err != nil {
		return domain.NewInternalError("failed to save question", err)
	}
	return nil
}

func (s *bankServiceImpl) Delete(ctx context.Context, userID, bankID string) error {
	bank, err := s.ownedBank(ctx, userID, bankID)
	if err != nil {
		return err
	}
	if err := s.bankRepo.Delete(ctx, bank.ID); err != nil {
		return domain.NewInternalError("failed to delete question bank", err)
	}
	logger.Get().Info("Question bank deleted", zap.String("bankID", bankID), zap.String("userID", userID))
	return nil
}

// ownedBank loads a bank and requires the caller to be its creator.
// Mutations on someone else's bank report not-found, matching lookups
// scoped to the creator.
func (s *bankServiceImpl) ownedBank(ctx context.Context, userID, bankID string) (*domain.QuestionBank, error) {
	bank, err := s.bankRepo.GetByID(ctx, bankID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load question bank", err)
	}
	if bank == nil || bank.CreatorID != userID {
		return nil, domain.NewBankNotFoundError(bankID)
	}
	return bank, nil
}

func toBankResponses(banks []*domain.QuestionBank) []dto.BankResponse {
	responses := make([]dto.BankResponse, len(banks))
	for i, bank := range banks {
		responses[i] = dto.NewBankResponse(bank)
	}
	return responses
}
