package evaluator

import (
	"strings"

	"prepdeck/internal/domain"
)

const (
	maxScore          = 10
	goodFeedback      = "Good answer overall 👍"
	improveFeedback   = "Needs improvement. Focus on clarity and examples."
	positiveThreshold = 7
)

// HeuristicEvaluator scores free-text answers with deterministic rules.
// It performs no I/O and never fails.
type HeuristicEvaluator struct{}

// NewHeuristicEvaluator creates a new HeuristicEvaluator.
func NewHeuristicEvaluator() domain.AnswerEvaluator {
	return &HeuristicEvaluator{}
}

// Evaluate scores an answer additively: length, the presence of an
// example, and word count each contribute points. The score is clamped
// to the 0..10 range.
func (e *HeuristicEvaluator) Evaluate(question, answer string) domain.Evaluation {
	var (
		score        int
		strengths    []string
		improvements []string
	)

	if len(answer) > 20 {
		score += 4
		strengths = append(strengths, "Answer has good length")
	} else {
		improvements = append(improvements, "Answer is too short")
	}

	if strings.Contains(strings.ToLower(answer), "example") {
		score += 3
		strengths = append(strengths, "Includes example")
	} else {
		improvements = append(improvements, "Try adding an example")
	}

	if len(strings.Fields(answer)) > 30 {
		score += 3
		strengths = append(strengths, "Well explained")
	} else {
		improvements = append(improvements, "Can be explained in more detail")
	}

	if score > maxScore {
		score = maxScore
	}

	feedback := improveFeedback
	if score >= positiveThreshold {
		feedback = goodFeedback
	}

	return domain.Evaluation{
		Score:        score,
		Feedback:     feedback,
		Strengths:    strengths,
		Improvements: improvements,
	}
}
