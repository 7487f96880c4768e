// Package repository declares the capability interfaces the use-case
// layer depends on. Each capability has one production adapter and one
// in-memory fake used in tests; the orchestrator composes them instead
// of inheriting backend behavior.
package repository

import (
	"context"

	"sqlgate/internal/domain/entity"
)

// KnowledgeStore performs similarity lookups over the three grounding
// collections. Results come back ordered by descending similarity,
// truncated to the configured top-K. Implementations return a
// *entity.RetrievalError when the underlying store is unreachable.
type KnowledgeStore interface {
	FindSimilarExamples(ctx context.Context, query string) ([]entity.QuestionSQL, error)
	FindRelevantDDL(ctx context.Context, query string) ([]entity.DDLEntry, error)
	FindRelevantDocs(ctx context.Context, query string) ([]entity.DocEntry, error)
}

// KnowledgeWriter seeds the grounding collections. Only the trainer
// uses it; the request-serving path is read-only.
type KnowledgeWriter interface {
	AddExample(ctx context.Context, pair entity.QuestionSQL) error
	AddDDL(ctx context.Context, ddl entity.DDLEntry) error
	AddDoc(ctx context.Context, doc entity.DocEntry) error
}

// ChatModel submits an ordered, role-tagged prompt and returns the
// generated text with token usage.
type ChatModel interface {
	Generate(ctx context.Context, prompt entity.Prompt) (*entity.GenerationResult, error)
}

// Embedder turns free text into the vector the knowledge store indexes.
type Embedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Executor runs a SQL string against the target database and
// materializes the rows as ordered field-to-value mappings.
type Executor interface {
	Run(ctx context.Context, sqlText string) ([]map[string]any, error)
}

// AuditLog persists one row per question lifecycle. Append writes the
// generation-time fields; RecordFetch fills in the trailing fetch
// columns of the row identified by requestID.
type AuditLog interface {
	Append(ctx context.Context, row entity.AuditRow) error
	RecordFetch(ctx context.Context, requestID string, fetchSeconds float64, result string) error
}

// TokenLimiter caps cumulative LLM token spend per caller.
type TokenLimiter interface {
	CheckLimit(ctx context.Context, callerID string) (bool, error)
	Increment(ctx context.Context, callerID string, tokens int) error
}
