package models

import (
	"database/sql"
	"time"

	"prepdeck/internal/domain"
	"prepdeck/internal/util"
)

// UserStats is the database row for a user's running aggregate. The
// breakdown lists are JSON documents in CLOB columns so the whole
// aggregate is written atomically in one row.
type UserStats struct {
	ID                     string              `db:"ID"` // ULID
	UserID                 string              `db:"USER_ID"`
	TotalQuestionsAnswered int                 `db:"TOTAL_QUESTIONS_ANSWERED"`
	TotalSessionsCompleted int                 `db:"TOTAL_SESSIONS_COMPLETED"`
	TotalTimeSpent         int                 `db:"TOTAL_TIME_SPENT"`
	AverageScore           float64             `db:"AVERAGE_SCORE"`
	HighestScore           float64             `db:"HIGHEST_SCORE"`
	LowestScore            float64             `db:"LOWEST_SCORE"`
	CategoryStats          CategoryStatSlice   `db:"CATEGORY_STATS"`
	DifficultyStats        DifficultyStatSlice `db:"DIFFICULTY_STATS"`
	DailyStats             DailyStatSlice      `db:"DAILY_STATS"`
	Achievements           AchievementSlice    `db:"ACHIEVEMENTS"`
	CurrentStreak          int                 `db:"CURRENT_STREAK"`
	LongestStreak          int                 `db:"LONGEST_STREAK"`
	LastPracticeDate       sql.NullTime        `db:"LAST_PRACTICE_DATE"`
	WeakTopics             StringSlice         `db:"WEAK_TOPICS"`
	StrongTopics           StringSlice         `db:"STRONG_TOPICS"`
	UpdatedAt              time.Time           `db:"UPDATED_AT"`
}

// ToDomain converts the row to its domain representation.
func (m *UserStats) ToDomain() *domain.UserStats {
	return &domain.UserStats{
		ID:                     m.ID,
		UserID:                 m.UserID,
		TotalQuestionsAnswered: m.TotalQuestionsAnswered,
		TotalSessionsCompleted: m.TotalSessionsCompleted,
		TotalTimeSpent:         m.TotalTimeSpent,
		AverageScore:           m.AverageScore,
		HighestScore:           m.HighestScore,
		LowestScore:            m.LowestScore,
		CategoryStats:          []domain.CategoryStat(m.CategoryStats),
		DifficultyStats:        []domain.DifficultyStat(m.DifficultyStats),
		DailyStats:             []domain.DailyStat(m.DailyStats),
		Achievements:           []domain.Achievement(m.Achievements),
		CurrentStreak:          m.CurrentStreak,
		LongestStreak:          m.LongestStreak,
		LastPracticeDate:       util.NullTimeToPtr(m.LastPracticeDate),
		WeakTopics:             []string(m.WeakTopics),
		StrongTopics:           []string(m.StrongTopics),
		UpdatedAt:              m.UpdatedAt,
	}
}

// StatsFromDomain converts a domain aggregate to its database row.
func StatsFromDomain(st *domain.UserStats) *UserStats {
	return &UserStats{
		ID:                     st.ID,
		UserID:                 st.UserID,
		TotalQuestionsAnswered: st.TotalQuestionsAnswered,
		TotalSessionsCompleted: st.TotalSessionsCompleted,
		TotalTimeSpent:         st.TotalTimeSpent,
		AverageScore:           st.AverageScore,
		HighestScore:           st.HighestScore,
		LowestScore:            st.LowestScore,
		CategoryStats:          CategoryStatSlice(st.CategoryStats),
		DifficultyStats:        DifficultyStatSlice(st.DifficultyStats),
		DailyStats:             DailyStatSlice(st.DailyStats),
		Achievements:           AchievementSlice(st.Achievements),
		CurrentStreak:          st.CurrentStreak,
		LongestStreak:          st.LongestStreak,
		LastPracticeDate:       util.TimePtrToNullTime(st.LastPracticeDate),
		WeakTopics:             StringSlice(st.WeakTopics),
		StrongTopics:           StringSlice(st.StrongTopics),
		UpdatedAt:              st.UpdatedAt,
	}
}

// LeaderboardRow is the stats row joined with the owning user's display
// fields, used only by the ranked listing query.
type LeaderboardRow struct {
	UserID                 string         `db:"USER_ID"`
	Name                   sql.NullString `db:"NAME"`
	Email                  string         `db:"EMAIL"`
	AverageScore           float64        `db:"AVERAGE_SCORE"`
	TotalSessionsCompleted int            `db:"TOTAL_SESSIONS_COMPLETED"`
	LongestStreak          int            `db:"LONGEST_STREAK"`
	TotalQuestionsAnswered int            `db:"TOTAL_QUESTIONS_ANSWERED"`
}

// ToDomain converts the joined row to a leaderboard entry.
func (m *LeaderboardRow) ToDomain() domain.LeaderboardEntry {
	return domain.LeaderboardEntry{
		UserID:                 m.UserID,
		Name:                   m.Name.String,
		Email:                  m.Email,
		AverageScore:           m.AverageScore,
		TotalSessionsCompleted: m.TotalSessionsCompleted,
		LongestStreak:          m.LongestStreak,
		TotalQuestionsAnswered: m.TotalQuestionsAnswered,
	}
}
