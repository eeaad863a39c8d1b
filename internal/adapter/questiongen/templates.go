package questiongen

import (
	"context"
	"strings"

	"prepdeck/internal/domain"
)

// questionTemplates holds the local fallback question sets keyed by
// category and difficulty. The technical/intermediate set doubles as
// the default for combinations without their own templates.
var questionTemplates = map[domain.Category]map[domain.Difficulty][]string{
	domain.CategoryTechnical: {
		domain.DifficultyBeginner: {
			"Can you explain the basic concept of {topic}?",
			"What are the main components of {topic}?",
			"How would you get started with {topic}?",
			"What are some common use cases for {topic}?",
			"Can you describe a simple example of {topic} in action?",
		},
		domain.DifficultyIntermediate: {
			"How would you implement {topic} in a real-world scenario?",
			"What are the advantages and disadvantages of {topic}?",
			"Can you explain the architecture of {topic}?",
			"How does {topic} compare to similar technologies?",
			"What are some best practices when working with {topic}?",
		},
		domain.DifficultyAdvanced: {
			"How would you optimize {topic} for high-performance scenarios?",
			"What are the security considerations when implementing {topic}?",
			"Can you discuss the scalability challenges of {topic}?",
			"How would you troubleshoot complex issues with {topic}?",
			"What are the latest developments and trends in {topic}?",
		},
	},
	domain.CategoryBehavioral: {
		domain.DifficultyBeginner: {
			"Can you tell me about a time when you learned something new?",
			"How do you handle working with a difficult team member?",
			"Describe your approach to problem-solving.",
			"How do you prioritize your tasks?",
			"What motivates you in your work?",
		},
		domain.DifficultyIntermediate: {
			"Can you describe a challenging project you worked on?",
			"How do you handle conflicting priorities?",
			"Tell me about a time you received critical feedback.",
			"How do you approach learning new technologies?",
			"Describe your experience working in a team environment.",
		},
		domain.DifficultyAdvanced: {
			"How have you handled leading a team through a major change?",
			"Can you discuss a time when you had to make a difficult decision?",
			"How do you mentor and develop junior team members?",
			"Describe your experience with cross-functional collaboration.",
			"How do you stay current with industry trends and technologies?",
		},
	},
}

// templatesFor resolves the template set for a category/difficulty pair,
// falling back to technical/intermediate when no dedicated set exists.
func templatesFor(category domain.Category, difficulty domain.Difficulty) []string {
	if byDifficulty, ok := questionTemplates[category]; ok {
		if templates, ok := byDifficulty[difficulty]; ok {
			return templates
		}
	}
	return questionTemplates[domain.CategoryTechnical][domain.DifficultyIntermediate]
}

// TemplateGenerator produces question drafts from the local template
// sets. It is fully deterministic and always returns exactly count drafts,
// cycling through the template set when count exceeds its size.
type TemplateGenerator struct{}

// NewTemplateGenerator creates a new TemplateGenerator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// Generate implements domain.QuestionGenerator.
func (g *TemplateGenerator) Generate(_ context.Context, topic string, count int, category domain.Category, difficulty domain.Difficulty) []domain.QuestionDraft {
	return g.generate(topic, count, category, difficulty)
}

func (g *TemplateGenerator) generate(topic string, count int, category domain.Category, difficulty domain.Difficulty) []domain.QuestionDraft {
	templates := templatesFor(category, difficulty)

	drafts := make([]domain.QuestionDraft, 0, count)
	for i := 0; i < count; i++ {
		template := templates[i%len(templates)]
		drafts = append(drafts, domain.QuestionDraft{
			Question:   strings.ReplaceAll(template, "{topic}", topic),
			Category:   category,
			Difficulty: difficulty,
		})
	}
	return drafts
}
