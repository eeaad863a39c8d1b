package service

import (
	"context"
	"fmt"
	"strings"

	"prepdeck/internal/config"
	"prepdeck/internal/domain"
	"prepdeck/internal/dto"
	"prepdeck/internal/logger"
	"prepdeck/internal/util"

	"go.uber.org/zap"
)

const (
	minQuestionCount   = 1
	maxQuestionCount   = 20
	minTimePerQuestion = 30
	maxTimePerQuestion = 300
)

// SessionService owns the interview session lifecycle.
type SessionService interface {
	Create(ctx context.Context, userID string, req dto.CreateSessionRequest) (*dto.SessionResponse, error)
	SubmitAnswer(ctx context.Context, userID string, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	GetByID(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error)
	ListMySessions(ctx context.Context, userID string) ([]dto.SessionSummaryResponse, error)
}

type sessionServiceImpl struct {
	sessionRepo domain.SessionRepository
	generator   domain.QuestionGenerator
	evaluator   domain.AnswerEvaluator
	stats       StatsService
	defaults    config.SessionConfig
}

// NewSessionService creates a new instance of SessionService.
func NewSessionService(
	sessionRepo domain.SessionRepository,
	generator domain.QuestionGenerator,
	evaluator domain.AnswerEvaluator,
	stats StatsService,
	defaults config.SessionConfig,
) SessionService {
	return &sessionServiceImpl{
		sessionRepo: sessionRepo,
		generator:   generator,
		evaluator:   evaluator,
		stats:       stats,
		defaults:    defaults,
	}
}

// Create validates the request, resolves defaults, generates the question
// set and persists the new session.
func (s *sessionServiceImpl) Create(ctx context.Context, userID string, req dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	var validationErrs domain.ValidationErrors

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		validationErrs = append(validationErrs, domain.NewMissingFieldError("topic"))
	}

	category, ok := domain.ParseCategory(req.Category, domain.Category(s.defaults.DefaultCategory))
	if !ok {
		validationErrs = append(validationErrs, domain.NewInvalidFormatError("category", req.Category))
	}
	difficulty, ok := domain.ParseDifficulty(req.Difficulty, domain.Difficulty(s.defaults.DefaultDifficulty))
	if !ok {
		validationErrs = append(validationErrs, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	}

	questionCount := req.QuestionCount
	if questionCount == 0 {
		questionCount = s.defaults.DefaultQuestionCount
	}
	if questionCount < minQuestionCount || questionCount > maxQuestionCount {
		validationErrs = append(validationErrs, domain.NewOutOfRangeError("question_count", questionCount, minQuestionCount, maxQuestionCount))
	}

	timePerQuestion := req.TimePerQuestion
	if timePerQuestion == 0 {
		timePerQuestion = s.defaults.DefaultTimePerQuestion
	}
	if timePerQuestion < minTimePerQuestion || timePerQuestion > maxTimePerQuestion {
		validationErrs = append(validationErrs, domain.NewOutOfRangeError("time_per_question", timePerQuestion, minTimePerQuestion, maxTimePerQuestion))
	}

	if len(validationErrs) > 0 {
		return nil, validationErrs
	}

	drafts := s.generator.Generate(ctx, topic, questionCount, category, difficulty)

	session := domain.NewInterviewSession(util.NewULID(), userID, topic, category, difficulty, timePerQuestion, drafts)
	if err := session.Validate(); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, domain.NewInternalError("failed to save interview session", err)
	}

	logger.Get().Info("Interview session created",
		zap.String("sessionID", session.ID),
		zap.String("userID", userID),
		zap.String("topic", topic),
		zap.Int("questions", len(session.Questions)))

	return dto.NewSessionResponse(session), nil
}

// SubmitAnswer evaluates one answer, records it on the session and, when
// the submission completes the session, folds it into the user's stats.
// A stats failure never fails the submission.
func (s *sessionServiceImpl) SubmitAnswer(ctx context.Context, userID string, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	appLogger := logger.Get()

	session, err := s.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load interview session", err)
	}
	if session == nil || session.UserID != userID {
		return nil, domain.NewSessionNotFoundError(req.SessionID)
	}

	if req.QuestionIndex < 0 || req.QuestionIndex >= len(session.Questions) {
		return nil, domain.NewNotFoundError(fmt.Sprintf("question index %d out of range", req.QuestionIndex))
	}

	evaluation := s.evaluator.Evaluate(session.Questions[req.QuestionIndex].Question, req.Answer)

	if err := session.RecordAnswer(req.QuestionIndex, req.Answer, evaluation.Score, evaluation.Feedback); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, domain.NewInternalError("failed to save answer", err)
	}

	if session.Completed {
		if err := s.stats.ApplyCompletedSession(ctx, userID, session); err != nil {
			appLogger.Error("Failed to fold completed session into stats",
				zap.Error(err),
				zap.String("sessionID", session.ID),
				zap.String("userID", userID))
		}
	}

	return &dto.SubmitAnswerResponse{
		Score:        evaluation.Score,
		Feedback:     evaluation.Feedback,
		Strengths:    evaluation.Strengths,
		Improvements: evaluation.Improvements,
		TotalScore:   session.TotalScore,
		Completed:    session.Completed,
	}, nil
}

// GetByID returns a session, scoped to its owner.
func (s *sessionServiceImpl) GetByID(ctx context.Context, userID, sessionID string) (*dto.SessionResponse, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load interview session", err)
	}
	if session == nil || session.UserID != userID {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	return dto.NewSessionResponse(session), nil
}

// ListMySessions returns the user's sessions, newest first.
func (s *sessionServiceImpl) ListMySessions(ctx context.Context, userID string) ([]dto.SessionSummaryResponse, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list interview sessions", err)
	}
	summaries := make([]dto.SessionSummaryResponse, len(sessions))
	for i, session := range sessions {
		summaries[i] = dto.NewSessionSummaryResponse(session)
	}
	return summaries, nil
}
