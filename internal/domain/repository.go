package domain

import (
	"context"
	"time"
)

// SessionRepository persists interview sessions. Lookups that find
// nothing return (nil, nil); callers translate that to a domain error.
type SessionRepository interface {
	Create(ctx context.Context, session *InterviewSession) error
	GetByID(ctx context.Context, id string) (*InterviewSession, error)
	Update(ctx context.Context, session *InterviewSession) error
	ListByUser(ctx context.Context, userID string) ([]*InterviewSession, error)
	// ListByUserSince returns the user's sessions created at or after the
	// given instant, oldest first.
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*InterviewSession, error)
	// ListRecentByUser returns the newest sessions first, at most limit.
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]*InterviewSession, error)
}

// LeaderboardEntry is one row of the ranked stats listing, joined with
// user display fields.
type LeaderboardEntry struct {
	UserID                 string
	Name                   string
	Email                  string
	AverageScore           float64
	TotalSessionsCompleted int
	LongestStreak          int
	TotalQuestionsAnswered int
}

// LeaderboardSort selects the ranking key.
type LeaderboardSort string

const (
	LeaderboardOverall  LeaderboardSort = "overall"
	LeaderboardSessions LeaderboardSort = "sessions"
	LeaderboardStreak   LeaderboardSort = "streak"
)

// StatsRepository persists the per-user aggregate.
type StatsRepository interface {
	GetByUserID(ctx context.Context, userID string) (*UserStats, error)
	Create(ctx context.Context, stats *UserStats) error
	Update(ctx context.Context, stats *UserStats) error
	// ListTop returns at most limit entries ranked by the sort key,
	// descending, ties broken by user id for a stable order.
	ListTop(ctx context.Context, sort LeaderboardSort, limit int) ([]LeaderboardEntry, error)
}

// BankRepository persists question banks.
type BankRepository interface {
	Create(ctx context.Context, bank *QuestionBank) error
	GetByID(ctx context.Context, id string) (*QuestionBank, error)
	Update(ctx context.Context, bank *QuestionBank) error
	Delete(ctx context.Context, id string) error
	ListByCreator(ctx context.Context, creatorID string) ([]*QuestionBank, error)
	ListPublic(ctx context.Context) ([]*QuestionBank, error)
}

// ResourceRepository reads the study resource catalog.
type ResourceRepository interface {
	ListActive(ctx context.Context, filter ResourceFilter) ([]*StudyResource, error)
	Create(ctx context.Context, resource *StudyResource) error
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*User, error)
	Update(ctx context.Context, user *User) error
}
