package dto

import (
	"time"

	"prepdeck/internal/domain"
)

// CreateSessionRequest represents the request body for starting an
// interview session. Optional fields fall back to server defaults.
type CreateSessionRequest struct {
	Topic           string `json:"topic" validate:"required"`
	Category        string `json:"category"`
	Difficulty      string `json:"difficulty"`
	QuestionCount   int    `json:"question_count"`
	TimePerQuestion int    `json:"time_per_question"`
}

// SubmitAnswerRequest represents the request body for answering one
// question of a session.
type SubmitAnswerRequest struct {
	SessionID     string `json:"session_id" validate:"required"`
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer" validate:"required"`
}

// QuestionResponse is one question slot of a session.
type QuestionResponse struct {
	Question   string `json:"question"`
	UserAnswer string `json:"user_answer,omitempty"`
	Score      int    `json:"score"`
	Feedback   string `json:"feedback,omitempty"`
}

// SessionResponse represents an interview session in the API response.
type SessionResponse struct {
	ID              string             `json:"id"`
	Topic           string             `json:"topic"`
	Category        string             `json:"category"`
	Difficulty      string             `json:"difficulty"`
	QuestionCount   int                `json:"question_count"`
	TimePerQuestion int                `json:"time_per_question"`
	Questions       []QuestionResponse `json:"questions"`
	TotalScore      int                `json:"total_score"`
	Completed       bool               `json:"completed"`
	TotalTimeSpent  int                `json:"total_time_spent"`
	CreatedAt       time.Time          `json:"created_at"`
}

// SubmitAnswerResponse is the evaluation outcome for one answer.
type SubmitAnswerResponse struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	TotalScore   int      `json:"total_score"`
	Completed    bool     `json:"completed"`
}

// SessionSummaryResponse is the compact session row used by list endpoints.
type SessionSummaryResponse struct {
	ID            string    `json:"id"`
	Topic         string    `json:"topic"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	QuestionCount int       `json:"question_count"`
	TotalScore    int       `json:"total_score"`
	Completed     bool      `json:"completed"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewSessionResponse maps a domain session to its API representation.
func NewSessionResponse(s *domain.InterviewSession) *SessionResponse {
	questions := make([]QuestionResponse, len(s.Questions))
	for i, q := range s.Questions {
		questions[i] = QuestionResponse{
			Question:   q.Question,
			UserAnswer: q.UserAnswer,
			Score:      q.Score,
			Feedback:   q.Feedback,
		}
	}
	return &SessionResponse{
		ID:              s.ID,
		Topic:           s.Topic,
		Category:        string(s.Category),
		Difficulty:      string(s.Difficulty),
		QuestionCount:   s.QuestionCount,
		TimePerQuestion: s.TimePerQuestion,
		Questions:       questions,
		TotalScore:      s.TotalScore,
		Completed:       s.Completed,
		TotalTimeSpent:  s.TotalTimeSpent,
		CreatedAt:       s.CreatedAt,
	}
}

// NewSessionSummaryResponse maps a domain session to its list row.
func NewSessionSummaryResponse(s *domain.InterviewSession) SessionSummaryResponse {
	return SessionSummaryResponse{
		ID:            s.ID,
		Topic:         s.Topic,
		Category:      string(s.Category),
		Difficulty:    string(s.Difficulty),
		QuestionCount: s.QuestionCount,
		TotalScore:    s.TotalScore,
		Completed:     s.Completed,
		CreatedAt:     s.CreatedAt,
	}
}
