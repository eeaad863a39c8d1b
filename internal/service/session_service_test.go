package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"prepdeck/internal/config"
	"prepdeck/internal/domain"
	"prepdeck/internal/dto"
	"prepdeck/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestMain initializes the logger for all tests in this package.
func TestMain(m *testing.M) {
	if err := logger.Initialize(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testSessionDefaults() config.SessionConfig {
	return config.SessionConfig{
		DefaultQuestionCount:   5,
		DefaultTimePerQuestion: 60,
		DefaultCategory:        "technical",
		DefaultDifficulty:      "intermediate",
	}
}

func draftsFor(topic string, count int) []domain.QuestionDraft {
	drafts := make([]domain.QuestionDraft, count)
	for i := range drafts {
		drafts[i] = domain.QuestionDraft{
			Question:   "What is " + topic + "?",
			Category:   domain.CategoryTechnical,
			Difficulty: domain.DifficultyIntermediate,
		}
	}
	return drafts
}

func TestSessionService_Create_AppliesDefaults(t *testing.T) {
	sessionRepo := new(MockSessionRepository)
	generator := new(MockQuestionGenerator)
	eval := new(MockAnswerEvaluator)
	stats := new(MockStatsService)

	generator.On("Generate", mock.Anything, "goroutines", 5, domain.CategoryTechnical, domain.DifficultyIntermediate).
		Return(draftsFor("goroutines", 5))
	sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.InterviewSession")).Return(nil)

	svc := NewSessionService(sessionRepo, generator, eval, stats, testSessionDefaults())

	resp, err := svc.Create(context.Background(), "user-1", dto.CreateSessionRequest{Topic: "goroutines"})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "goroutines", resp.Topic)
	assert.Equal(t, "technical", resp.Category)
	assert.Equal(t, "intermediate", resp.Difficulty)
	assert.Equal(t, 5, resp.QuestionCount)
	assert.Equal(t, 60, resp.TimePerQuestion)
	assert.False(t, resp.Completed)
	generator.AssertExpectations(t)
	sessionRepo.AssertExpectations(t)
}

func TestSessionService_Create_CollectsValidationErrors(t *testing.T) {
	svc := NewSessionService(new(MockSessionRepository), new(MockQuestionGenerator), new(MockAnswerEvaluator), new(MockStatsService), testSessionDefaults())

	_, err := svc.Create(context.Background(), "user-1", dto.CreateSessionRequest{
		Topic:           "   ",
		Category:        "quantum",
		Difficulty:      "impossible",
		QuestionCount:   25,
		TimePerQuestion: 10,
	})
	require.Error(t, err)

	var validationErrs domain.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	assert.Len(t, validationErrs, 5)

	fields := make(map[string]bool)
	for _, ve := range validationErrs {
		fields[ve.Field] = true
	}
	assert.True(t, fields["topic"])
	assert.True(t, fields["category"])
	assert.True(t, fields["difficulty"])
	assert.True(t, fields["question_count"])
	assert.True(t, fields["time_per_question"])
}

func TestSessionService_Create_RepoErrorBecomesInternal(t *testing.T) {
	sessionRepo := new(MockSessionRepository)
	generator := new(MockQuestionGenerator)

	generator.On("Generate", mock.Anything, "sql", 5, domain.CategoryTechnical, domain.DifficultyIntermediate).
		Return(draftsFor("sql", 5))
	sessionRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("ora-00001"))

	svc := NewSessionService(sessionRepo, generator, new(MockAnswerEvaluator), new(MockStatsService), testSessionDefaults())

	_, err := svc.Create(context.Background(), "user-1", dto.CreateSessionRequest{Topic: "sql"})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
}

func TestSessionService_SubmitAnswer_ScoresAndPersists(t *testing.T) {
	sessionRepo := new(MockSessionRepository)
	eval := new(MockAnswerEvaluator)
	stats := new(MockStatsService)

	session := domain.NewInterviewSession("01HSESSION00000000000000AA", "user-1", "go", domain.CategoryTechnical, domain.DifficultyIntermediate, 60, draftsFor("go", 2))

	sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
	sessionRepo.On("Update", mock.Anything, session).Return(nil)
	eval.On("Evaluate", session.Questions[0].Question, "an answer").Return(domain.Evaluation{
		Score:        7,
		Feedback:     "Good answer overall 👍",
		Strengths:    []string{"Answer has good length"},
		Improvements: []string{"Can be explained in more detail"},
	})

	svc := NewSessionService(sessionRepo, new(MockQuestionGenerator), eval, stats, testSessionDefaults())

	resp, err := svc.SubmitAnswer(context.Background(), "user-1", dto.SubmitAnswerRequest{
		SessionID:     session.ID,
		QuestionIndex: 0,
		Answer:        "an answer",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, resp.Score)
	assert.Equal(t, 7, resp.TotalScore)
	assert.False(t, resp.Completed)
	stats.AssertNotCalled(t, "ApplyCompletedSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionService_SubmitAnswer_FinalQuestionCompletesAndFoldsStats(t *testing.T) {
	sessionRepo := new(MockSessionRepository)
	eval := new(MockAnswerEvaluator)
	stats := new(MockStatsService)

	session := domain.NewInterviewSession("01HSESSION00000000000000AB", "user-1", "go", domain.CategoryTechnical, domain.DifficultyIntermediate, 60, draftsFor("go", 1))

	sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
	sessionRepo.On("Update", mock.Anything, session).Return(nil)
	eval.On("Evaluate", mock.Anything, mock.Anything).Return(domain.Evaluation{Score: 10, Feedback: "Good answer overall 👍"})
	stats.On("ApplyCompletedSession", mock.Anything, "user-1", session).Return(nil)

	svc := NewSessionService(sessionRepo, new(MockQuestionGenerator), eval, stats, testSessionDefaults())

	resp, err := svc.SubmitAnswer(context.Background(), "user-1", dto.SubmitAnswerRequest{
		SessionID:     session.ID,
		QuestionIndex: 0,
		Answer:        "final answer",
	})
	require.NoError(t, err)
	assert.True(t, resp.Completed)
	stats.AssertExpectations(t)
}

func TestSessionService_SubmitAnswer_StatsFailureDoesNotFailSubmission(t *testing.T) {
	sessionRepo := new(MockSessionRepository)
	eval := new(MockAnswerEvaluator)
	stats := new(MockStatsService)

	session := domain.NewInterviewSession("01HSESSION00000000000000AC", "user-1", "go", domain.CategoryTechnical, domain.DifficultyIntermediate, 60, draftsFor("go", 1))

	sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
	sessionRepo.On("Update", mock.Anything, session).Return(nil)
	eval.On("Evaluate", mock.Anything, mock.Anything).Return(domain.Evaluation{Score: 4})
	stats.On("ApplyCompletedSession", mock.Anything, "user-1", session).Return(errors.New("stats write failed"))

	svc := NewSessionService(sessionRepo, new(MockQuestionGenerator), eval, stats, testSessionDefaults())

	resp, err := svc.SubmitAnswer(context.Background(), "user-1", dto.SubmitAnswerRequest{
		SessionID:     session.ID,
		QuestionIndex: 0,
		Answer:        "answer",
	})
	require.NoError(t, err)
	assert.True(t, resp.Completed)
}

func TestSessionService_SubmitAnswer_ResubmissionRejected(t *testing.T) {
	sessionRepo := new(MockSessionRepository)
	eval := new(MockAnswerEvaluator)

	session := domain.NewInterviewSession("01HSESSION00000000000000AD", "user-1", "go", domain.CategoryTechnical, domain.DifficultyIntermediate, 60, draftsFor("go", 2))
	require.NoError(t, session.RecordAnswer(0, "first answer", 5, "ok"))

	sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
	eval.On("Evaluate", mock.Anything, mock.Anything).Return(domain.Evaluation{Score: 9})

	svc := NewSessionService(sessionRepo, new(MockQuestionGenerator), eval, new(MockStatsService), testSessionDefaults())

	_, err := svc.SubmitAnswer(context.Background(), "user-1", dto.SubmitAnswerRequest{
		SessionID:     session.ID,
		QuestionIndex: 0,
		Answer:        "second answer",
	})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeAlreadyAnswered, domainErr.Code)
	// The stored answer and total must be untouched.
	assert.Equal(t, "first answer", session.Questions[0].UserAnswer)
	assert.Equal(t, 5, session.TotalScore)
}

func TestSessionService_SubmitAnswer_WrongOwnerReportsNotFound(t *testing.T) {
	sessionRepo := new(MockSessionRepository)

	session := domain.NewInterviewSession("01HSESSION00000000000000AE", "owner", "go", domain.CategoryTechnical, domain.DifficultyIntermediate, 60, draftsFor("go", 1))
	sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)

	svc := NewSessionService(sessionRepo, new(MockQuestionGenerator), new(MockAnswerEvaluator), new(MockStatsService), testSessionDefaults())

	_, err := svc.SubmitAnswer(context.Background(), "intruder", dto.SubmitAnswerRequest{
		SessionID:     session.ID,
		QuestionIndex: 0,
		Answer:        "answer",
	})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeSessionNotFound, domainErr.Code)
}

func TestSessionService_SubmitAnswer_IndexOutOfRange(t *testing.T) {
	sessionRepo := new(MockSessionRepository)

	session := domain.NewInterviewSession("01HSESSION00000000000000AF", "user-1", "go", domain.CategoryTechnical, domain.DifficultyIntermediate, 60, draftsFor("go", 2))
	sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)

	svc := NewSessionService(sessionRepo, new(MockQuestionGenerator), new(MockAnswerEvaluator), new(MockStatsService), testSessionDefaults())

	_, err := svc.SubmitAnswer(context.Background(), "user-1", dto.SubmitAnswerRequest{
		SessionID:     session.ID,
		QuestionIndex: 2,
		Answer:        "answer",
	})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestSessionService_GetByID_MissingSession(t *testing.T) {
	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	svc := NewSessionService(sessionRepo, new(MockQuestionGenerator), new(MockAnswerEvaluator), new(MockStatsService), testSessionDefaults())

	_, err := svc.GetByID(context.Background(), "user-1", "missing")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeSessionNotFound, domainErr.Code)
}
