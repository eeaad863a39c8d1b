package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"prepdeck/internal/cache"
	"prepdeck/internal/config"
	"prepdeck/internal/domain"
	"prepdeck/internal/dto"
	"prepdeck/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	recentSessionsLimit   = 10
	performanceWindowDays = 30
	dailyActivityDays     = 7
	streakLookbackDays    = 30
	weaknessThreshold     = 70
	weaknessLimit         = 3
	leaderboardLimit      = 50
)

// AnalyticsService derives dashboards, predictions and the leaderboard
// from stored sessions and stats. It never mutates stored state.
type AnalyticsService interface {
	GetAnalytics(ctx context.Context, userID string) (*dto.AnalyticsResponse, error)
	GetPredictions(ctx context.Context, userID string) (*dto.PredictionsResponse, error)
	GetLeaderboard(ctx context.Context, sortKey string) (*dto.LeaderboardResponse, error)
}

type analyticsServiceImpl struct {
	sessionRepo domain.SessionRepository
	statsRepo   domain.StatsRepository
	cache       domain.Cache
	cacheCfg    config.CacheConfig
}

// NewAnalyticsService creates a new instance of AnalyticsService.
func NewAnalyticsService(
	sessionRepo domain.SessionRepository,
	statsRepo domain.StatsRepository,
	cacheAdapter domain.Cache,
	cacheCfg config.CacheConfig,
) AnalyticsService {
	return &analyticsServiceImpl{
		sessionRepo: sessionRepo,
		statsRepo:   statsRepo,
		cache:       cacheAdapter,
		cacheCfg:    cacheCfg,
	}
}

// GetAnalytics assembles the full dashboard. A user with no history gets
// all-zero structures, not an error.
func (s *analyticsServiceImpl) GetAnalytics(ctx context.Context, userID string) (*dto.AnalyticsResponse, error) {
	appLogger := logger.Get()
	cacheKey := cache.GenerateCacheKey("analytics", "dashboard", userID)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var resp dto.AnalyticsResponse
		if jsonErr := json.Unmarshal([]byte(cached), &resp); jsonErr == nil {
			return &resp, nil
		}
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		appLogger.Warn("Analytics cache read failed", zap.Error(err), zap.String("userID", userID))
	}

	now := time.Now()

	var (
		stats     *domain.UserStats
		recent    []*domain.InterviewSession
		inWindow  []*domain.InterviewSession
		streakSet []*domain.InterviewSession
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.statsRepo.GetByUserID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.sessionRepo.ListRecentByUser(gctx, userID, recentSessionsLimit)
		return err
	})
	g.Go(func() error {
		var err error
		inWindow, err = s.sessionRepo.ListByUserSince(gctx, userID, now.AddDate(0, 0, -performanceWindowDays))
		return err
	})
	g.Go(func() error {
		var err error
		streakSet, err = s.sessionRepo.ListByUserSince(gctx, userID, startOfDay(now).AddDate(0, 0, -(streakLookbackDays-1)))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to load analytics data", err)
	}

	resp := &dto.AnalyticsResponse{
		CategoryPerformance: []dto.CategoryPerformance{},
		RecentSessions:      []dto.SessionSummaryResponse{},
		PerformanceOverTime: []dto.PerformancePoint{},
		CategoryTrends:      []dto.CategoryTrend{},
		DailyStats:          []dto.DailyActivity{},
		Weaknesses:          []dto.CategoryTrend{},
		Achievements:        []dto.AchievementBadge{},
	}

	if stats != nil {
		resp.Stats = dto.StatsSummary{
			TotalQuestionsAnswered: stats.TotalQuestionsAnswered,
			TotalSessionsCompleted: stats.TotalSessionsCompleted,
			TotalTimeSpent:         stats.TotalTimeSpent,
			AverageScore:           stats.AverageScore,
			HighestScore:           int(stats.HighestScore),
			LowestScore:            int(stats.LowestScore),
		}
		for _, cs := range stats.CategoryStats {
			resp.CategoryPerformance = append(resp.CategoryPerformance, dto.CategoryPerformance{
				Category:          string(cs.Category),
				QuestionsAnswered: cs.QuestionsAnswered,
				AverageScore:      cs.AverageScore,
				BestScore:         int(cs.BestScore),
				TotalTime:         cs.TotalTime,
			})
			resp.CategoryTrends = append(resp.CategoryTrends, dto.CategoryTrend{
				Category:       string(cs.Category),
				AverageScore:   cs.AverageScore,
				TotalQuestions: cs.QuestionsAnswered,
			})
		}
	}

	for _, session := range recent {
		resp.RecentSessions = append(resp.RecentSessions, dto.NewSessionSummaryResponse(session))
	}

	for _, session := range inWindow {
		resp.PerformanceOverTime = append(resp.PerformanceOverTime, dto.PerformancePoint{
			Date:      session.CreatedAt.UTC().Format("2006-01-02"),
			Score:     session.TotalScore,
			Questions: len(session.Questions),
			Category:  string(session.Category),
		})
	}

	resp.DailyStats = buildDailyActivity(inWindow, now)
	resp.Weaknesses = findWeaknesses(resp.CategoryTrends)
	resp.StudyStreak = computeStudyStreak(streakSet, now)

	if stats != nil {
		resp.Achievements = deriveBadges(stats, resp.StudyStreak)
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(payload), s.cacheCfg.AnalyticsTTL); err != nil {
			appLogger.Warn("Analytics cache write failed", zap.Error(err), zap.String("userID", userID))
		}
	}
	return resp, nil
}

// buildDailyActivity buckets the window sessions into the trailing seven
// UTC calendar days, oldest first. Empty days appear with zero values.
func buildDailyActivity(sessions []*domain.InterviewSession, now time.Time) []dto.DailyActivity {
	type bucket struct {
		questions int
		score     int
		sessions  int
	}
	buckets := make(map[string]*bucket, dailyActivityDays)
	days := make([]string, 0, dailyActivityDays)
	for i := dailyActivityDays - 1; i >= 0; i-- {
		day := now.UTC().AddDate(0, 0, -i).Format("2006-01-02")
		days = append(days, day)
		buckets[day] = &bucket{}
	}

	for _, session := range sessions {
		day := session.CreatedAt.UTC().Format("2006-01-02")
		if b, ok := buckets[day]; ok {
			b.questions += len(session.Questions)
			b.score += session.TotalScore
			b.sessions++
		}
	}

	activity := make([]dto.DailyActivity, 0, dailyActivityDays)
	for _, day := range days {
		b := buckets[day]
		avg := 0.0
		if b.sessions > 0 {
			avg = float64(b.score) / float64(b.sessions)
		}
		activity = append(activity, dto.DailyActivity{
			Date:         day,
			Questions:    b.questions,
			AverageScore: avg,
			Sessions:     b.sessions,
		})
	}
	return activity
}

// findWeaknesses returns the lowest-scoring categories under the
// threshold, worst first, at most three.
func findWeaknesses(trends []dto.CategoryTrend) []dto.CategoryTrend {
	weaknesses := make([]dto.CategoryTrend, 0, len(trends))
	for _, t := range trends {
		if t.AverageScore < weaknessThreshold {
			weaknesses = append(weaknesses, t)
		}
	}
	sort.SliceStable(weaknesses, func(i, j int) bool {
		return weaknesses[i].AverageScore < weaknesses[j].AverageScore
	})
	if len(weaknesses) > weaknessLimit {
		weaknesses = weaknesses[:weaknessLimit]
	}
	return weaknesses
}

// computeStudyStreak walks back from today counting consecutive UTC
// calendar days with at least one session, bounded by the lookback
// window. A day without practice ends the walk, so a user who has not
// practiced today has a streak of zero.
func computeStudyStreak(sessions []*domain.InterviewSession, now time.Time) int {
	practiced := make(map[string]bool, len(sessions))
	for _, session := range sessions {
		practiced[session.CreatedAt.UTC().Format("2006-01-02")] = true
	}

	streak := 0
	for i := 0; i < streakLookbackDays; i++ {
		day := now.UTC().AddDate(0, 0, -i).Format("2006-01-02")
		if !practiced[day] {
			break
		}
		streak++
	}
	return streak
}

// deriveBadges recomputes the threshold badges from current values.
func deriveBadges(stats *domain.UserStats, studyStreak int) []dto.AchievementBadge {
	badges := []dto.AchievementBadge{}
	if stats.TotalSessionsCompleted >= domain.MilestoneSessions {
		badges = append(badges, dto.AchievementBadge{Name: "Dedicated Learner", Description: "Completed 10 sessions", Icon: "🎯"})
	}
	if stats.AverageScore*10 >= domain.MilestoneAverage {
		badges = append(badges, dto.AchievementBadge{Name: "High Achiever", Description: "Average score above 85%", Icon: "⭐"})
	}
	if studyStreak >= domain.MilestoneStreak {
		badges = append(badges, dto.AchievementBadge{Name: "Consistent", Description: "7-day study streak", Icon: "🔥"})
	}
	if stats.TotalQuestionsAnswered >= domain.MilestoneQuestions {
		badges = append(badges, dto.AchievementBadge{Name: "Question Master", Description: "Answered 100+ questions", Icon: "🧠"})
	}
	return badges
}

// GetPredictions computes the naive readiness forecast. Confidence grows
// with session count, so the coefficients come in three tiers.
func (s *analyticsServiceImpl) GetPredictions(ctx context.Context, userID string) (*dto.PredictionsResponse, error) {
	stats, err := s.statsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load stats for predictions", err)
	}
	if stats == nil {
		return &dto.PredictionsResponse{
			Strengths:       []string{},
			Weaknesses:      []string{},
			Recommendations: []string{"Complete more interview sessions to get predictions"},
		}, nil
	}

	totalSessions := stats.TotalSessionsCompleted
	averageScore := stats.AverageScore
	currentStreak := stats.CurrentStreak
	longestStreak := stats.LongestStreak

	var successProbability, overallReadiness float64
	switch {
	case totalSessions >= 10:
		streakRatio := 0.0
		if longestStreak > 0 {
			streakRatio = float64(currentStreak) / float64(longestStreak)
		}
		successProbability = math.Min(averageScore*0.8+streakRatio*20, 95)
		overallReadiness = math.Min(averageScore*0.7+float64(totalSessions)/20*30, 100)
	case totalSessions >= 5:
		successProbability = math.Min(averageScore*0.6+float64(currentStreak)/5*20, 75)
		overallReadiness = math.Min(averageScore*0.5+float64(totalSessions)/10*30, 80)
	default:
		successProbability = math.Max(averageScore*0.4, 10)
		overallReadiness = math.Max(averageScore*0.3, 5)
	}

	strengths := []string{}
	weaknesses := []string{}
	for _, cs := range stats.CategoryStats {
		switch {
		case cs.AverageScore >= 75:
			strengths = append(strengths, fmt.Sprintf("%s: %.1f%%", cs.Category, cs.AverageScore))
		case cs.AverageScore < 60:
			weaknesses = append(weaknesses, fmt.Sprintf("%s: %.1f%%", cs.Category, cs.AverageScore))
		}
	}

	recommendations := []string{}
	if totalSessions < 5 {
		recommendations = append(recommendations, "Complete at least 5 interview sessions for better predictions")
	}
	if averageScore*10 < 70 {
		recommendations = append(recommendations, "Focus on improving answer quality and technical depth")
	}
	if currentStreak < 3 {
		recommendations = append(recommendations, "Maintain a consistent practice streak")
	}
	if len(weaknesses) > 0 {
		limit := 2
		if len(weaknesses) < limit {
			limit = len(weaknesses)
		}
		recommendations = append(recommendations, fmt.Sprintf("Strengthen your knowledge in: %s", strings.Join(weaknesses[:limit], ", ")))
	}
	if len(strengths) > 2 {
		recommendations = append(recommendations, "Leverage your strengths in technical interviews")
	}
	for _, ds := range stats.DifficultyStats {
		if ds.Difficulty == domain.DifficultyAdvanced && ds.AverageScore < 60 {
			recommendations = append(recommendations, "Practice more advanced-level questions")
			break
		}
	}

	return &dto.PredictionsResponse{
		OverallReadiness:   int(math.Round(overallReadiness)),
		SuccessProbability: int(math.Round(successProbability)),
		TotalSessions:      totalSessions,
		AverageScore:       int(math.Round(averageScore)),
		CurrentStreak:      currentStreak,
		LongestStreak:      longestStreak,
		Strengths:          truncate(strengths, 3),
		Weaknesses:         truncate(weaknesses, 3),
		Recommendations:    truncate(recommendations, 4),
	}, nil
}

// GetLeaderboard returns the top ranked stats rows. The result is shared
// across users so it is cached per sort key.
func (s *analyticsServiceImpl) GetLeaderboard(ctx context.Context, sortKey string) (*dto.LeaderboardResponse, error) {
	appLogger := logger.Get()

	sortBy := domain.LeaderboardSort(sortKey)
	switch sortBy {
	case domain.LeaderboardOverall, domain.LeaderboardSessions, domain.LeaderboardStreak:
	default:
		sortBy = domain.LeaderboardOverall
	}

	cacheKey := cache.GenerateCacheKey("analytics", "leaderboard", string(sortBy))
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var resp dto.LeaderboardResponse
		if jsonErr := json.Unmarshal([]byte(cached), &resp); jsonErr == nil {
			return &resp, nil
		}
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		appLogger.Warn("Leaderboard cache read failed", zap.Error(err))
	}

	entries, err := s.statsRepo.ListTop(ctx, sortBy, leaderboardLimit)
	if err != nil {
		return nil, domain.NewInternalError("failed to load leaderboard", err)
	}

	resp := &dto.LeaderboardResponse{Leaderboards: make([]dto.LeaderboardRow, len(entries))}
	for i, e := range entries {
		resp.Leaderboards[i] = dto.LeaderboardRow{
			UserID:                 e.UserID,
			Name:                   e.Name,
			Email:                  e.Email,
			AverageScore:           e.AverageScore,
			TotalSessionsCompleted: e.TotalSessionsCompleted,
			LongestStreak:          e.LongestStreak,
			TotalQuestionsAnswered: e.TotalQuestionsAnswered,
		}
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(payload), s.cacheCfg.LeaderboardTTL); err != nil {
			appLogger.Warn("Leaderboard cache write failed", zap.Error(err))
		}
	}
	return resp, nil
}

func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func truncate(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
