package domain

import (
	"strings"
	"time"
)

// Category is the subject-matter tag of a session or question.
type Category string

const (
	CategoryTechnical      Category = "technical"
	CategoryBehavioral     Category = "behavioral"
	CategorySystemDesign   Category = "system-design"
	CategoryDataStructures Category = "data-structures"
	CategoryAlgorithms     Category = "algorithms"
	CategoryFrontend       Category = "frontend"
	CategoryBackend        Category = "backend"
	CategoryDevOps         Category = "devops"
	CategoryCustom         Category = "custom"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryTechnical,
	CategoryBehavioral,
	CategorySystemDesign,
	CategoryDataStructures,
	CategoryAlgorithms,
	CategoryFrontend,
	CategoryBackend,
	CategoryDevOps,
	CategoryCustom,
}

// ParseCategory resolves a category string. The empty string resolves to
// the given default; anything else must match a known category exactly.
func ParseCategory(s string, def Category) (Category, bool) {
	if s == "" {
		return def, true
	}
	for _, c := range Categories {
		if string(c) == strings.ToLower(s) {
			return c, true
		}
	}
	return "", false
}

// Difficulty is the beginner/intermediate/advanced tier of a session.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

var Difficulties = []Difficulty{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
}

// ParseDifficulty resolves a difficulty string, like ParseCategory.
func ParseDifficulty(s string, def Difficulty) (Difficulty, bool) {
	if s == "" {
		return def, true
	}
	for _, d := range Difficulties {
		if string(d) == strings.ToLower(s) {
			return d, true
		}
	}
	return "", false
}

// Question is a single slot of an interview session. Answer holds the
// canonical answer when one exists; UserAnswer, Score and Feedback are
// written once when the slot is answered.
type Question struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	UserAnswer string `json:"userAnswer"`
	Score      int    `json:"score"`
	Feedback   string `json:"feedback"`
}

// Answered reports whether the slot already holds a scored answer.
func (q *Question) Answered() bool {
	return q.UserAnswer != "" || q.Feedback != ""
}

// QuestionDraft is a freshly generated question before it is attached
// to a session.
type QuestionDraft struct {
	Question   string     `json:"question"`
	Category   Category   `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Answer     string     `json:"answer"`
}

// InterviewSession is one timed practice attempt with a fixed question set.
type InterviewSession struct {
	ID              string
	UserID          string
	Topic           string
	Category        Category
	Difficulty      Difficulty
	QuestionCount   int
	TimePerQuestion int // seconds
	Questions       []Question
	TotalScore      int
	Completed       bool
	TotalTimeSpent  int // seconds
	CreatedAt       time.Time
}

// NewInterviewSession creates a session from generated drafts.
func NewInterviewSession(id, userID, topic string, category Category, difficulty Difficulty, timePerQuestion int, drafts []QuestionDraft) *InterviewSession {
	questions := make([]Question, len(drafts))
	for i, d := range drafts {
		questions[i] = Question{Question: d.Question, Answer: d.Answer}
	}
	return &InterviewSession{
		ID:              id,
		UserID:          userID,
		Topic:           topic,
		Category:        category,
		Difficulty:      difficulty,
		QuestionCount:   len(drafts),
		TimePerQuestion: timePerQuestion,
		Questions:       questions,
		CreatedAt:       time.Now(),
	}
}

// Validate validates the session
func (s *InterviewSession) Validate() error {
	if s.UserID == "" {
		return NewInvalidInputError("user ID is required")
	}
	if strings.TrimSpace(s.Topic) == "" {
		return NewInvalidInputError("topic is required")
	}
	if len(s.Questions) == 0 {
		return NewInvalidInputError("session must contain at least one question")
	}
	return nil
}

// RecordAnswer writes an evaluated answer onto the question slot at index
// and accumulates the session total. Submitting the final slot completes
// the session. An out-of-range index or an already answered slot is an
// error; totalScore can never double-count.
func (s *InterviewSession) RecordAnswer(index int, userAnswer string, score int, feedback string) error {
	if index < 0 || index >= len(s.Questions) {
		return NewNotFoundError("question not found in session")
	}
	q := &s.Questions[index]
	if q.Answered() {
		return NewAlreadyAnsweredError(index)
	}
	q.UserAnswer = userAnswer
	q.Score = score
	q.Feedback = feedback
	s.TotalScore += score
	if index == len(s.Questions)-1 {
		s.Completed = true
	}
	return nil
}

// ScorePerQuestion returns the session score normalized by its question
// count. Sessions always carry at least one question.
func (s *InterviewSession) ScorePerQuestion() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(len(s.Questions))
}
