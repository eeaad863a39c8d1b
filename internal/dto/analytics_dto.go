package dto

// StatsSummary is the headline block of the analytics dashboard.
type StatsSummary struct {
	TotalQuestionsAnswered int     `json:"total_questions_answered"`
	TotalSessionsCompleted int     `json:"total_sessions_completed"`
	TotalTimeSpent         int     `json:"total_time_spent"`
	AverageScore           float64 `json:"average_score"`
	HighestScore           int     `json:"highest_score"`
	LowestScore            int     `json:"lowest_score"`
}

// CategoryPerformance is the per-category breakdown row.
type CategoryPerformance struct {
	Category          string  `json:"category"`
	QuestionsAnswered int     `json:"questions_answered"`
	AverageScore      float64 `json:"average_score"`
	BestScore         int     `json:"best_score"`
	TotalTime         int     `json:"total_time"`
}

// PerformancePoint is one session plotted on the 30-day time series.
type PerformancePoint struct {
	Date      string `json:"date"`
	Score     int    `json:"score"`
	Questions int    `json:"questions"`
	Category  string `json:"category"`
}

// CategoryTrend summarizes a category for trend and weakness views.
type CategoryTrend struct {
	Category       string  `json:"category"`
	AverageScore   float64 `json:"average_score"`
	TotalQuestions int     `json:"total_questions"`
	Improvement    float64 `json:"improvement"`
}

// DailyActivity is one day of the trailing-week activity chart.
type DailyActivity struct {
	Date         string  `json:"date"`
	Questions    int     `json:"questions"`
	AverageScore float64 `json:"average_score"`
	Sessions     int     `json:"sessions"`
}

// AchievementBadge is an earned badge on the dashboard.
type AchievementBadge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// AnalyticsResponse is the full analytics dashboard payload.
type AnalyticsResponse struct {
	Stats               StatsSummary             `json:"stats"`
	CategoryPerformance []CategoryPerformance    `json:"category_performance"`
	RecentSessions      []SessionSummaryResponse `json:"recent_sessions"`
	PerformanceOverTime []PerformancePoint       `json:"performance_over_time"`
	CategoryTrends      []CategoryTrend          `json:"category_trends"`
	DailyStats          []DailyActivity          `json:"daily_stats"`
	Weaknesses          []CategoryTrend          `json:"weaknesses"`
	StudyStreak         int                      `json:"study_streak"`
	Achievements        []AchievementBadge       `json:"achievements"`
}

// PredictionsResponse is the naive readiness forecast payload.
type PredictionsResponse struct {
	OverallReadiness   int      `json:"overall_readiness"`
	SuccessProbability int      `json:"success_probability"`
	TotalSessions      int      `json:"total_sessions"`
	AverageScore       int      `json:"average_score"`
	CurrentStreak      int      `json:"current_streak"`
	LongestStreak      int      `json:"longest_streak"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	Recommendations    []string `json:"recommendations"`
}

// LeaderboardRow is one ranked entry of the leaderboard.
type LeaderboardRow struct {
	UserID                 string  `json:"user_id"`
	Name                   string  `json:"name"`
	Email                  string  `json:"email"`
	AverageScore           float64 `json:"average_score"`
	TotalSessionsCompleted int     `json:"total_sessions_completed"`
	LongestStreak          int     `json:"longest_streak"`
	TotalQuestionsAnswered int     `json:"total_questions_answered"`
}

// LeaderboardResponse wraps the ranked rows.
type LeaderboardResponse struct {
	Leaderboards []LeaderboardRow `json:"leaderboards"`
}
