package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionWithQuestions(n int) *InterviewSession {
	drafts := make([]QuestionDraft, n)
	for i := range drafts {
		drafts[i] = QuestionDraft{Question: "q", Category: CategoryTechnical, Difficulty: DifficultyIntermediate}
	}
	return NewInterviewSession("01HTEST000000000000000000A", "user-1", "go", CategoryTechnical, DifficultyIntermediate, 60, drafts)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("", CategoryBehavioral)
	assert.True(t, ok)
	assert.Equal(t, CategoryBehavioral, c)

	c, ok = ParseCategory("System-Design", CategoryTechnical)
	assert.True(t, ok)
	assert.Equal(t, CategorySystemDesign, c)

	_, ok = ParseCategory("astrology", CategoryTechnical)
	assert.False(t, ok)
}

func TestParseDifficulty(t *testing.T) {
	d, ok := ParseDifficulty("ADVANCED", DifficultyBeginner)
	assert.True(t, ok)
	assert.Equal(t, DifficultyAdvanced, d)

	_, ok = ParseDifficulty("expert", DifficultyBeginner)
	assert.False(t, ok)
}

func TestRecordAnswer_AccumulatesAndCompletes(t *testing.T) {
	s := sessionWithQuestions(2)

	require.NoError(t, s.RecordAnswer(0, "first", 7, "fb"))
	assert.Equal(t, 7, s.TotalScore)
	assert.False(t, s.Completed)

	require.NoError(t, s.RecordAnswer(1, "second", 4, "fb"))
	assert.Equal(t, 11, s.TotalScore)
	assert.True(t, s.Completed)
}

func TestRecordAnswer_ResubmissionCannotDoubleCount(t *testing.T) {
	s := sessionWithQuestions(2)
	require.NoError(t, s.RecordAnswer(0, "first", 7, "fb"))

	err := s.RecordAnswer(0, "again", 10, "fb")
	require.Error(t, err)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeAlreadyAnswered, domainErr.Code)
	assert.Equal(t, 7, s.TotalScore)
	assert.Equal(t, "first", s.Questions[0].UserAnswer)
}

func TestRecordAnswer_OutOfRange(t *testing.T) {
	s := sessionWithQuestions(1)

	for _, index := range []int{-1, 1} {
		err := s.RecordAnswer(index, "a", 5, "fb")
		require.Error(t, err)

		var domainErr *DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeNotFound, domainErr.Code)
	}
}

func TestRecordAnswer_ZeroScoreAnswerStillMarksSlot(t *testing.T) {
	s := sessionWithQuestions(2)
	require.NoError(t, s.RecordAnswer(0, "weak answer", 0, "fb"))

	// A zero-score slot is answered; only the feedback marks it when the
	// user answer is empty too.
	assert.True(t, s.Questions[0].Answered())

	err := s.RecordAnswer(0, "retry", 10, "fb")
	require.Error(t, err)
}

func TestSessionValidate(t *testing.T) {
	s := sessionWithQuestions(1)
	require.NoError(t, s.Validate())

	s.Topic = "  "
	require.Error(t, s.Validate())

	s = sessionWithQuestions(1)
	s.UserID = ""
	require.Error(t, s.Validate())

	s = sessionWithQuestions(1)
	s.Questions = nil
	require.Error(t, s.Validate())
}

func TestScorePerQuestion(t *testing.T) {
	s := sessionWithQuestions(4)
	s.TotalScore = 30
	assert.Equal(t, 7.5, s.ScorePerQuestion())
}
