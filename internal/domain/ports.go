package domain

import (
	"context"
	"time"
)

// QuestionGenerator produces interview questions for a topic. Generate
// always returns exactly count well-formed drafts; implementations absorb
// upstream failures by degrading to a local source, so there is no error
// return.
type QuestionGenerator interface {
	Generate(ctx context.Context, topic string, count int, category Category, difficulty Difficulty) []QuestionDraft
}

// Evaluation is the outcome of scoring a single free-text answer.
type Evaluation struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// AnswerEvaluator scores a free-text answer against a question. Scores
// are bounded to [0, 10]; evaluation is deterministic and cannot fail.
type AnswerEvaluator interface {
	Evaluate(question, answer string) Evaluation
}

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache defines the interface (port) for caching operations.
// Implementations of this interface will be the adapters (e.g., RedisCacheAdapter).
type Cache interface {
	// Get retrieves an item from the cache.
	// It returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)

	// Set adds an item to the cache, overwriting an existing item if one
	// exists. If expiration is 0 the item is cached indefinitely.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete removes an item from the cache.
	// It should not return an error if the key is not found.
	Delete(ctx context.Context, key string) error

	// Ping checks the health of the cache service.
	Ping(ctx context.Context) error
}
