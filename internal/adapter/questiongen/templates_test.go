package questiongen

import (
	"context"
	"os"
	"testing"

	"prepdeck/internal/domain"
	"prepdeck/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain initializes the logger for all tests in this package.
func TestMain(m *testing.M) {
	if err := logger.Initialize(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestTemplateGenerator_SubstitutesTopic(t *testing.T) {
	g := NewTemplateGenerator()

	drafts := g.Generate(context.Background(), "Kubernetes", 1, domain.CategoryTechnical, domain.DifficultyBeginner)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Can you explain the basic concept of Kubernetes?", drafts[0].Question)
	assert.Equal(t, domain.CategoryTechnical, drafts[0].Category)
	assert.Equal(t, domain.DifficultyBeginner, drafts[0].Difficulty)
}

func TestTemplateGenerator_CyclesWhenCountExceedsTemplates(t *testing.T) {
	g := NewTemplateGenerator()

	drafts := g.Generate(context.Background(), "Redis", 7, domain.CategoryTechnical, domain.DifficultyAdvanced)
	require.Len(t, drafts, 7)
	// The sixth and seventh questions wrap around to the start of the set.
	assert.Equal(t, drafts[0].Question, drafts[5].Question)
	assert.Equal(t, drafts[1].Question, drafts[6].Question)
}

func TestTemplateGenerator_UnknownCombinationFallsBack(t *testing.T) {
	g := NewTemplateGenerator()

	fromUnknown := g.Generate(context.Background(), "GraphQL", 5, domain.CategoryFrontend, domain.DifficultyAdvanced)
	fromDefault := g.Generate(context.Background(), "GraphQL", 5, domain.CategoryTechnical, domain.DifficultyIntermediate)

	require.Len(t, fromUnknown, 5)
	for i := range fromUnknown {
		assert.Equal(t, fromDefault[i].Question, fromUnknown[i].Question)
	}
	// The requested category still tags the drafts.
	assert.Equal(t, domain.CategoryFrontend, fromUnknown[0].Category)
}

func TestTemplateGenerator_BehavioralQuestionsHaveNoPlaceholder(t *testing.T) {
	g := NewTemplateGenerator()

	drafts := g.Generate(context.Background(), "leadership", 5, domain.CategoryBehavioral, domain.DifficultyIntermediate)
	require.Len(t, drafts, 5)
	for _, d := range drafts {
		assert.NotContains(t, d.Question, "{topic}")
	}
}
