package service

import (
	"context"
	"errors"
	"testing"

	"prepdeck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func completedStatsSession() *domain.InterviewSession {
	return &domain.InterviewSession{
		ID:            "session-1",
		UserID:        "user-1",
		Topic:         "Go",
		Category:      domain.CategoryTechnical,
		Difficulty:    domain.DifficultyIntermediate,
		QuestionCount: 5,
		Questions: []domain.Question{
			{Question: "Q1"}, {Question: "Q2"}, {Question: "Q3"},
			{Question: "Q4"}, {Question: "Q5"},
		},
		TotalScore:     35,
		Completed:      true,
		TotalTimeSpent: 300,
	}
}

var analyticsCacheKeys = []string{
	"prepdeck:analytics:dashboard:user-1",
	"prepdeck:analytics:leaderboard:overall",
	"prepdeck:analytics:leaderboard:sessions",
	"prepdeck:analytics:leaderboard:streak",
}

func TestApplyCompletedSession_SeedsAggregate(t *testing.T) {
	mockStatsRepo := new(MockStatsRepository)
	mockCache := new(MockCache)
	statsService := NewStatsService(mockStatsRepo, mockCache)

	mockStatsRepo.On("GetByUserID", mock.Anything, "user-1").Return(nil, nil)
	mockStatsRepo.On("Create", mock.Anything, mock.MatchedBy(func(st *domain.UserStats) bool {
		return st.UserID == "user-1" && st.TotalSessionsCompleted == 1
	})).Return(nil)
	for _, key := range analyticsCacheKeys {
		mockCache.On("Delete", mock.Anything, key).Return(nil)
	}

	err := statsService.ApplyCompletedSession(context.Background(), "user-1", completedStatsSession())

	assert.NoError(t, err)
	mockStatsRepo.AssertExpectations(t)
	mockStatsRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApplyCompletedSession_InvalidatesAnalyticsCaches(t *testing.T) {
	mockStatsRepo := new(MockStatsRepository)
	mockCache := new(MockCache)
	statsService := NewStatsService(mockStatsRepo, mockCache)

	existing := domain.NewUserStats("stats-1", "user-1")
	mockStatsRepo.On("GetByUserID", mock.Anything, "user-1").Return(existing, nil)
	mockStatsRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	for _, key := range analyticsCacheKeys {
		mockCache.On("Delete", mock.Anything, key).Return(nil)
	}

	err := statsService.ApplyCompletedSession(context.Background(), "user-1", completedStatsSession())

	require.NoError(t, err)
	// The dashboard and every leaderboard variant must be dropped so the
	// next read reflects the fold.
	mockCache.AssertExpectations(t)
	mockCache.AssertNumberOfCalls(t, "Delete", len(analyticsCacheKeys))
}

func TestApplyCompletedSession_CacheDeleteFailureIsNotFatal(t *testing.T) {
	mockStatsRepo := new(MockStatsRepository)
	mockCache := new(MockCache)
	statsService := NewStatsService(mockStatsRepo, mockCache)

	mockStatsRepo.On("GetByUserID", mock.Anything, "user-1").Return(nil, nil)
	mockStatsRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockCache.On("Delete", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	err := statsService.ApplyCompletedSession(context.Background(), "user-1", completedStatsSession())

	assert.NoError(t, err)
	mockCache.AssertNumberOfCalls(t, "Delete", len(analyticsCacheKeys))
}

func TestApplyCompletedSession_RepoErrorSkipsInvalidation(t *testing.T) {
	mockStatsRepo := new(MockStatsRepository)
	mockCache := new(MockCache)
	statsService := NewStatsService(mockStatsRepo, mockCache)

	existing := domain.NewUserStats("stats-1", "user-1")
	mockStatsRepo.On("GetByUserID", mock.Anything, "user-1").Return(existing, nil)
	mockStatsRepo.On("Update", mock.Anything, mock.Anything).Return(errors.New("db error"))

	err := statsService.ApplyCompletedSession(context.Background(), "user-1", completedStatsSession())

	assert.Error(t, err)
	mockCache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
