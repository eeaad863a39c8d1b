package models

import (
	"time"

	"prepdeck/internal/domain"
)

// InterviewSession is the database row for one interview session. The
// question list lives as a JSON document in a CLOB column.
type InterviewSession struct {
	ID              string        `db:"ID"` // ULID
	UserID          string        `db:"USER_ID"`
	Topic           string        `db:"TOPIC"`
	Category        string        `db:"CATEGORY"`
	Difficulty      string        `db:"DIFFICULTY"`
	QuestionCount   int           `db:"QUESTION_COUNT"`
	TimePerQuestion int           `db:"TIME_PER_QUESTION"`
	Questions       QuestionSlice `db:"QUESTIONS"`
	TotalScore      int           `db:"TOTAL_SCORE"`
	Completed       int           `db:"COMPLETED"` // Oracle has no boolean column type
	TotalTimeSpent  int           `db:"TOTAL_TIME_SPENT"`
	CreatedAt       time.Time     `db:"CREATED_AT"`
	UpdatedAt       time.Time     `db:"UPDATED_AT"`
}

// ToDomain converts the row to its domain representation.
func (m *InterviewSession) ToDomain() *domain.InterviewSession {
	return &domain.InterviewSession{
		ID:              m.ID,
		UserID:          m.UserID,
		Topic:           m.Topic,
		Category:        domain.Category(m.Category),
		Difficulty:      domain.Difficulty(m.Difficulty),
		QuestionCount:   m.QuestionCount,
		TimePerQuestion: m.TimePerQuestion,
		Questions:       []domain.Question(m.Questions),
		TotalScore:      m.TotalScore,
		Completed:       m.Completed != 0,
		TotalTimeSpent:  m.TotalTimeSpent,
		CreatedAt:       m.CreatedAt,
	}
}

// SessionFromDomain converts a domain session to its database row.
func SessionFromDomain(s *domain.InterviewSession) *InterviewSession {
	completed := 0
	if s.Completed {
		completed = 1
	}
	return &InterviewSession{
		ID:              s.ID,
		UserID:          s.UserID,
		Topic:           s.Topic,
		Category:        string(s.Category),
		Difficulty:      string(s.Difficulty),
		QuestionCount:   s.QuestionCount,
		TimePerQuestion: s.TimePerQuestion,
		Questions:       QuestionSlice(s.Questions),
		TotalScore:      s.TotalScore,
		Completed:       completed,
		TotalTimeSpent:  s.TotalTimeSpent,
		CreatedAt:       s.CreatedAt,
	}
}
