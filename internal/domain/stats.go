package domain

import (
	"time"
)

// CategoryStat is the per-category slice of a user's aggregate.
// Scores here are kept on a 0-100 percentage scale.
type CategoryStat struct {
	Category          Category `json:"category"`
	QuestionsAnswered int      `json:"questionsAnswered"`
	AverageScore      float64  `json:"averageScore"`
	BestScore         float64  `json:"bestScore"`
	TotalTime         int      `json:"totalTime"`
	SessionsCount     int      `json:"sessionsCount"`
}

// DifficultyStat is the per-difficulty slice of a user's aggregate.
type DifficultyStat struct {
	Difficulty        Difficulty `json:"difficulty"`
	QuestionsAnswered int        `json:"questionsAnswered"`
	AverageScore      float64    `json:"averageScore"`
	SessionsCount     int        `json:"sessionsCount"`
}

// DailyStat is one calendar day (UTC) of practice activity.
type DailyStat struct {
	Date              string  `json:"date"` // YYYY-MM-DD
	QuestionsAnswered int     `json:"questionsAnswered"`
	TimeSpent         int     `json:"timeSpent"`
	AverageScore      float64 `json:"averageScore"`
	SessionsCompleted int     `json:"sessionsCompleted"`
}

// Achievement is a persistently unlocked milestone.
type Achievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UnlockedAt  time.Time `json:"unlockedAt"`
	Icon        string    `json:"icon"`
}

// dailyStatsWindow bounds the stored per-day breakdown.
const dailyStatsWindow = 30

// UserStats is the durable per-user aggregate, folded forward once per
// completed session.
type UserStats struct {
	ID     string
	UserID string

	TotalQuestionsAnswered int
	TotalSessionsCompleted int
	TotalTimeSpent         int
	AverageScore           float64
	HighestScore           float64
	LowestScore            float64

	CategoryStats   []CategoryStat
	DifficultyStats []DifficultyStat
	DailyStats      []DailyStat
	Achievements    []Achievement

	CurrentStreak    int
	LongestStreak    int
	LastPracticeDate *time.Time

	WeakTopics   []string
	StrongTopics []string

	UpdatedAt time.Time
}

// NewUserStats returns a zeroed aggregate. LowestScore starts at 100 so
// the first real session always lowers it.
func NewUserStats(id, userID string) *UserStats {
	return &UserStats{
		ID:          id,
		UserID:      userID,
		LowestScore: 100,
		UpdatedAt:   time.Now(),
	}
}

// sessionPercent converts a session total to the 0-100 scale used by the
// category and difficulty breakdowns. Each question is worth 10 points.
func sessionPercent(s *InterviewSession) float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(len(s.Questions)*10) * 100
}

// ApplyCompletedSession folds one completed session into the aggregate.
// averageScore is the running mean of per-session score-per-question;
// highest and lowest compare raw session totals, not question scores.
func (st *UserStats) ApplyCompletedSession(s *InterviewSession, now time.Time) {
	perQuestion := s.ScorePerQuestion()

	if st.TotalSessionsCompleted == 0 {
		st.TotalQuestionsAnswered = len(s.Questions)
		st.TotalSessionsCompleted = 1
		st.TotalTimeSpent = s.TotalTimeSpent
		st.AverageScore = perQuestion
		st.HighestScore = float64(s.TotalScore)
		st.LowestScore = float64(s.TotalScore)
	} else {
		st.TotalQuestionsAnswered += len(s.Questions)
		st.TotalSessionsCompleted++
		st.TotalTimeSpent += s.TotalTimeSpent

		n := float64(st.TotalSessionsCompleted)
		st.AverageScore = (st.AverageScore*(n-1) + perQuestion) / n

		if float64(s.TotalScore) > st.HighestScore {
			st.HighestScore = float64(s.TotalScore)
		}
		if float64(s.TotalScore) < st.LowestScore {
			st.LowestScore = float64(s.TotalScore)
		}
	}

	st.applyCategory(s)
	st.applyDifficulty(s)
	st.applyDaily(s, now)
	st.applyStreak(now)
	st.applyAchievements(now)
	st.UpdatedAt = now
}

func (st *UserStats) applyCategory(s *InterviewSession) {
	pct := sessionPercent(s)
	for i := range st.CategoryStats {
		cs := &st.CategoryStats[i]
		if cs.Category != s.Category {
			continue
		}
		cs.QuestionsAnswered += len(s.Questions)
		cs.TotalTime += s.TotalTimeSpent
		cs.SessionsCount++
		cs.AverageScore += (pct - cs.AverageScore) / float64(cs.SessionsCount)
		if pct > cs.BestScore {
			cs.BestScore = pct
		}
		return
	}
	st.CategoryStats = append(st.CategoryStats, CategoryStat{
		Category:          s.Category,
		QuestionsAnswered: len(s.Questions),
		AverageScore:      pct,
		BestScore:         pct,
		TotalTime:         s.TotalTimeSpent,
		SessionsCount:     1,
	})
}

func (st *UserStats) applyDifficulty(s *InterviewSession) {
	pct := sessionPercent(s)
	for i := range st.DifficultyStats {
		ds := &st.DifficultyStats[i]
		if ds.Difficulty != s.Difficulty {
			continue
		}
		ds.QuestionsAnswered += len(s.Questions)
		ds.SessionsCount++
		ds.AverageScore += (pct - ds.AverageScore) / float64(ds.SessionsCount)
		return
	}
	st.DifficultyStats = append(st.DifficultyStats, DifficultyStat{
		Difficulty:        s.Difficulty,
		QuestionsAnswered: len(s.Questions),
		AverageScore:      pct,
		SessionsCount:     1,
	})
}

func (st *UserStats) applyDaily(s *InterviewSession, now time.Time) {
	day := now.UTC().Format("2006-01-02")
	pct := sessionPercent(s)

	found := false
	for i := range st.DailyStats {
		ds := &st.DailyStats[i]
		if ds.Date != day {
			continue
		}
		ds.QuestionsAnswered += len(s.Questions)
		ds.TimeSpent += s.TotalTimeSpent
		ds.SessionsCompleted++
		ds.AverageScore += (pct - ds.AverageScore) / float64(ds.SessionsCompleted)
		found = true
		break
	}
	if !found {
		st.DailyStats = append(st.DailyStats, DailyStat{
			Date:              day,
			QuestionsAnswered: len(s.Questions),
			TimeSpent:         s.TotalTimeSpent,
			AverageScore:      pct,
			SessionsCompleted: 1,
		})
	}

	// Drop days that fell out of the rolling window.
	cutoff := now.UTC().AddDate(0, 0, -dailyStatsWindow).Format("2006-01-02")
	kept := st.DailyStats[:0]
	for _, ds := range st.DailyStats {
		if ds.Date >= cutoff {
			kept = append(kept, ds)
		}
	}
	st.DailyStats = kept
}

func (st *UserStats) applyStreak(now time.Time) {
	today := now.UTC().Truncate(24 * time.Hour)
	if st.LastPracticeDate != nil {
		last := st.LastPracticeDate.UTC().Truncate(24 * time.Hour)
		switch {
		case last.Equal(today):
			// Already practiced today; streak unchanged.
		case last.Equal(today.AddDate(0, 0, -1)):
			st.CurrentStreak++
		default:
			st.CurrentStreak = 1
		}
	} else {
		st.CurrentStreak = 1
	}
	if st.CurrentStreak > st.LongestStreak {
		st.LongestStreak = st.CurrentStreak
	}
	practiced := now
	st.LastPracticeDate = &practiced
}

// Milestone thresholds mirrored by the read-time badge derivation.
const (
	MilestoneSessions  = 10
	MilestoneAverage   = 85
	MilestoneStreak    = 7
	MilestoneQuestions = 100
)

func (st *UserStats) applyAchievements(now time.Time) {
	unlock := func(id, name, description, icon string) {
		for _, a := range st.Achievements {
			if a.ID == id {
				return
			}
		}
		st.Achievements = append(st.Achievements, Achievement{
			ID:          id,
			Name:        name,
			Description: description,
			UnlockedAt:  now,
			Icon:        icon,
		})
	}

	if st.TotalSessionsCompleted >= MilestoneSessions {
		unlock("dedicated-learner", "Dedicated Learner", "Completed 10 sessions", "🎯")
	}
	if st.AverageScore*10 >= MilestoneAverage {
		unlock("high-achiever", "High Achiever", "Average score above 85%", "⭐")
	}
	if st.CurrentStreak >= MilestoneStreak {
		unlock("consistent", "Consistent", "7-day study streak", "🔥")
	}
	if st.TotalQuestionsAnswered >= MilestoneQuestions {
		unlock("question-master", "Question Master", "Answered 100+ questions", "🧠")
	}
}
