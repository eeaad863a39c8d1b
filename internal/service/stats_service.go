package service

import (
	"context"
	"time"

	"prepdeck/internal/cache"
	"prepdeck/internal/domain"
	"prepdeck/internal/logger"
	"prepdeck/internal/util"

	"go.uber.org/zap"
)

// StatsService folds completed sessions into the durable per-user
// aggregate.
type StatsService interface {
	ApplyCompletedSession(ctx context.Context, userID string, session *domain.InterviewSession) error
	GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error)
}

type statsServiceImpl struct {
	statsRepo domain.StatsRepository
	cache     domain.Cache
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(statsRepo domain.StatsRepository, cacheAdapter domain.Cache) StatsService {
	return &statsServiceImpl{statsRepo: statsRepo, cache: cacheAdapter}
}

// ApplyCompletedSession loads or seeds the user's aggregate, folds the
// session in and writes it back as one row. Cached analytics derived
// from the aggregate are invalidated afterwards.
func (s *statsServiceImpl) ApplyCompletedSession(ctx context.Context, userID string, session *domain.InterviewSession) error {
	stats, err := s.statsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	if stats == nil {
		stats = domain.NewUserStats(util.NewULID(), userID)
		stats.ApplyCompletedSession(session, now)
		if err := s.statsRepo.Create(ctx, stats); err != nil {
			return err
		}
	} else {
		stats.ApplyCompletedSession(session, now)
		if err := s.statsRepo.Update(ctx, stats); err != nil {
			return err
		}
	}

	s.invalidateAnalyticsCaches(ctx, userID)

	logger.Get().Info("User stats updated",
		zap.String("userID", userID),
		zap.String("sessionID", session.ID),
		zap.Int("sessionsCompleted", stats.TotalSessionsCompleted),
		zap.Float64("averageScore", stats.AverageScore))
	return nil
}

// invalidateAnalyticsCaches drops the user's cached dashboard and every
// leaderboard variant after a stats write. Best-effort: a failed delete
// only shortens freshness to the cache TTL.
func (s *statsServiceImpl) invalidateAnalyticsCaches(ctx context.Context, userID string) {
	keys := []string{
		cache.GenerateCacheKey("analytics", "dashboard", userID),
		cache.GenerateCacheKey("analytics", "leaderboard", string(domain.LeaderboardOverall)),
		cache.GenerateCacheKey("analytics", "leaderboard", string(domain.LeaderboardSessions)),
		cache.GenerateCacheKey("analytics", "leaderboard", string(domain.LeaderboardStreak)),
	}
	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.Get().Warn("Analytics cache invalidation failed",
				zap.String("key", key), zap.Error(err))
		}
	}
}

// GetByUserID returns the stored aggregate, or nil when the user has not
// completed a session yet.
func (s *statsServiceImpl) GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error) {
	return s.statsRepo.GetByUserID(ctx, userID)
}
