package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"prepdeck/internal/domain"
	"prepdeck/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// llmCaller abstracts the text-generation backend so tests can stub it.
// *ollama.LLM satisfies this interface.
type llmCaller interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

// llmGenerator produces question drafts by prompting a text-generation
// model. Any failure, from transport errors to malformed output, degrades
// to the local template fallback so callers always receive exactly count
// drafts.
type llmGenerator struct {
	llmClient llmCaller
	fallback  *TemplateGenerator
	timeout   time.Duration
}

// NewLLMGenerator creates a question generator backed by the given LLM
// client. A zero timeout defaults to 20 seconds.
func NewLLMGenerator(llm llmCaller, timeout time.Duration) domain.QuestionGenerator {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &llmGenerator{
		llmClient: llm,
		fallback:  NewTemplateGenerator(),
		timeout:   timeout,
	}
}

func (g *llmGenerator) Generate(ctx context.Context, topic string, count int, category domain.Category, difficulty domain.Difficulty) []domain.QuestionDraft {
	l := logger.Get()

	if g.llmClient == nil {
		l.Warn("LLM client not configured, using template questions", zap.String("topic", topic))
		return g.fallback.generate(topic, count, category, difficulty)
	}

	rawResponse, err := g.callLLM(ctx, g.buildPrompt(topic, count, category, difficulty))
	if err != nil {
		l.Error("LLM question generation failed, using template questions",
			zap.Error(err),
			zap.String("topic", topic))
		return g.fallback.generate(topic, count, category, difficulty)
	}

	drafts, err := g.parseResponse(rawResponse, category, difficulty)
	if err != nil {
		l.Error("Failed to parse LLM question response, using template questions",
			zap.Error(err),
			zap.String("raw_response", rawResponse[:min(300, len(rawResponse))]))
		return g.fallback.generate(topic, count, category, difficulty)
	}

	if len(drafts) > count {
		drafts = drafts[:count]
	}
	for i := range drafts {
		if strings.TrimSpace(drafts[i].Question) == "" {
			drafts[i].Question = fmt.Sprintf("Question %d about %s", i+1, topic)
		}
		if drafts[i].Category == "" {
			drafts[i].Category = category
		}
		if drafts[i].Difficulty == "" {
			drafts[i].Difficulty = difficulty
		}
	}

	// Top up from the templates when the model returned fewer than asked.
	if len(drafts) < count {
		filler := g.fallback.generate(topic, count, category, difficulty)
		drafts = append(drafts, filler[len(drafts):]...)
	}

	l.Info("Generated interview questions",
		zap.String("topic", topic),
		zap.Int("count", len(drafts)))
	return drafts
}

func (g *llmGenerator) buildPrompt(topic string, count int, category domain.Category, difficulty domain.Difficulty) string {
	return fmt.Sprintf(`Generate %d interview questions about "%s" for a %s level %s interview.

Requirements:
- Questions should be appropriate for %s level candidates
- Focus on %s concepts and practical applications
- Each question should encourage detailed, thoughtful answers
- Include a mix of conceptual and practical questions
- Questions should be clear and professional

Format your response as a JSON array of objects, where each object has:
- "question": the interview question text
- "category": "%s"
- "difficulty": "%s"

Example format:
[
  {
    "question": "Can you explain how you would design a scalable database schema for a social media platform?",
    "category": "technical",
    "difficulty": "intermediate"
  }
]

Generate exactly %d questions:`, count, topic, difficulty, category, difficulty, category, category, difficulty, count)
}

func (g *llmGenerator) callLLM(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := g.llmClient.Call(ctx, prompt, llms.WithTemperature(0.7))
	if err != nil {
		if err == context.DeadlineExceeded {
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}

// parseResponse extracts the first JSON-array-shaped substring of the
// response and unmarshals it into question drafts.
func (g *llmGenerator) parseResponse(raw string, category domain.Category, difficulty domain.Difficulty) ([]domain.QuestionDraft, error) {
	cleaned := strings.TrimSpace(raw)

	jsonStart := strings.Index(cleaned, "[")
	jsonEnd := strings.LastIndex(cleaned, "]")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return nil, fmt.Errorf("no JSON array found in LLM response")
	}

	var parsed []struct {
		Question   string `json:"question"`
		Category   string `json:"category"`
		Difficulty string `json:"difficulty"`
		Answer     string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(cleaned[jsonStart:jsonEnd+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal LLM response: %w", err)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("LLM returned an empty question list")
	}

	drafts := make([]domain.QuestionDraft, 0, len(parsed))
	for _, q := range parsed {
		cat, ok := domain.ParseCategory(q.Category, category)
		if !ok {
			cat = category
		}
		diff, ok := domain.ParseDifficulty(q.Difficulty, difficulty)
		if !ok {
			diff = difficulty
		}
		drafts = append(drafts, domain.QuestionDraft{
			Question:   strings.TrimSpace(q.Question),
			Category:   cat,
			Difficulty: diff,
			Answer:     q.Answer,
		})
	}
	return drafts, nil
}
