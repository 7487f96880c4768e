// Package usecase contains the retrieval-augmented SQL generation
// pipeline: context retrieval, prompt assembly, generation, cost and
// latency accounting, execution, and audit emission.
package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sqlgate/internal/domain/entity"
	"sqlgate/internal/domain/repository"
)

// User-visible result strings, kept stable for callers that match on
// them.
const (
	MsgNoSQL       = "Could not generate a valid SQL query."
	MsgNoRows      = "Query executed, but no results were returned."
	msgGenFailure  = "Error generating SQL query: "
	msgExecFailure = "Error executing SQL query: "
)

// Rates configures cost accounting. Cost is
// (input*InputTokenRate + output*OutputTokenRate) * Scale.
type Rates struct {
	InputTokenRate  float64
	OutputTokenRate float64
	Scale           float64
}

// Orchestrator coordinates the question-to-SQL pipeline. It composes
// narrow capability interfaces and converts every internal failure into
// a descriptive result value; nothing escapes it as a fault.
type Orchestrator struct {
	store        repository.KnowledgeStore
	model        repository.ChatModel
	executor     repository.Executor
	audit        repository.AuditLog
	limiter      repository.TokenLimiter // optional, may be nil
	instructions string
	rates        Rates
	genTimeout   time.Duration
	execTimeout  time.Duration
	log          zerolog.Logger
}

func NewOrchestrator(
	store repository.KnowledgeStore,
	model repository.ChatModel,
	executor repository.Executor,
	audit repository.AuditLog,
	limiter repository.TokenLimiter,
	instructions string,
	rates Rates,
	genTimeout, execTimeout time.Duration,
	log zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		store:        store,
		model:        model,
		executor:     executor,
		audit:        audit,
		limiter:      limiter,
		instructions: instructions,
		rates:        rates,
		genTimeout:   genTimeout,
		execTimeout:  execTimeout,
		log:          log,
	}
}

// GenerateSQL runs the full generation pipeline for one question:
// retrieve context (failures degrade, never abort), assemble the
// prompt, invoke the model under a timeout, account cost and latency,
// emit the audit row, and return the candidate. Generation failures are
// reported as data in the candidate's SQL field so a single bad
// question never crashes the serving loop.
func (o *Orchestrator) GenerateSQL(ctx context.Context, callerID, question string) *entity.SQLCandidate {
	cand := &entity.SQLCandidate{RequestID: uuid.NewString()}

	if o.limiter != nil {
		allowed, err := o.limiter.CheckLimit(ctx, callerID)
		if err != nil {
			o.log.Warn().Err(err).Msg("token limiter unavailable, allowing request")
		} else if !allowed {
			cand.SQL = msgGenFailure + entity.ErrTokenBudgetExceeded.Error()
			o.emitAudit(ctx, question, cand)
			return cand
		}
	}

	genCtx, cancel := context.WithTimeout(ctx, o.genTimeout)
	defer cancel()

	rc := o.retrieveContext(genCtx, question)
	cand.Prompt = BuildPrompt(o.instructions, question, rc)

	start := time.Now()
	result, err := o.model.Generate(genCtx, cand.Prompt)
	cand.Latency = time.Since(start)

	switch {
	case err != nil:
		o.log.Error().Err(err).Str("question", question).Msg("generation failed")
		cand.SQL = msgGenFailure + err.Error()
	default:
		cand.InputTokens = result.InputTokens
		cand.OutputTokens = result.OutputTokens
		cand.Cost = o.cost(result.InputTokens, result.OutputTokens)

		sql := ExtractSQL(result.Content)
		if sql == "" {
			cand.SQL = MsgNoSQL
		} else {
			cand.SQL = sql
		}

		if o.limiter != nil && result.InputTokens != nil && result.OutputTokens != nil {
			if err := o.limiter.Increment(ctx, callerID, *result.InputTokens+*result.OutputTokens); err != nil {
				o.log.Warn().Err(err).Msg("token usage increment failed")
			}
		}
	}

	o.emitAudit(ctx, question, cand)
	return cand
}

// ExecuteSQL runs a candidate statement and returns the result as a
// string: a JSON row array, the no-rows marker, or the database error
// verbatim. The fetch outcome is recorded on the audit row identified
// by requestID.
func (o *Orchestrator) ExecuteSQL(ctx context.Context, requestID, sqlText string) string {
	execCtx, cancel := context.WithTimeout(ctx, o.execTimeout)
	defer cancel()

	start := time.Now()
	rows, err := o.executor.Run(execCtx, sqlText)
	fetchSeconds := time.Since(start).Seconds()

	var result string
	switch {
	case err != nil:
		o.log.Error().Err(err).Str("sql", sqlText).Msg("execution failed")
		result = msgExecFailure + err.Error()
	case len(rows) == 0:
		result = MsgNoRows
	default:
		encoded, mErr := json.Marshal(rows)
		if mErr != nil {
			result = msgExecFailure + mErr.Error()
		} else {
			result = string(encoded)
		}
	}

	if err := o.audit.RecordFetch(ctx, requestID, fetchSeconds, result); err != nil {
		o.log.Error().Err(err).Str("request_id", requestID).Msg("audit fetch update failed")
	}
	return result
}

// retrieveContext performs the three independent lookups. Each failure
// degrades to an empty section of the grounding context.
func (o *Orchestrator) retrieveContext(ctx context.Context, question string) entity.RetrievedContext {
	var rc entity.RetrievedContext
	var err error

	if rc.Examples, err = o.store.FindSimilarExamples(ctx, question); err != nil {
		o.log.Warn().Err(err).Msg("example retrieval degraded")
		rc.Examples = nil
	}
	if rc.DDL, err = o.store.FindRelevantDDL(ctx, question); err != nil {
		o.log.Warn().Err(err).Msg("ddl retrieval degraded")
		rc.DDL = nil
	}
	if rc.Docs, err = o.store.FindRelevantDocs(ctx, question); err != nil {
		o.log.Warn().Err(err).Msg("documentation retrieval degraded")
		rc.Docs = nil
	}
	return rc
}

func (o *Orchestrator) emitAudit(ctx context.Context, question string, cand *entity.SQLCandidate) {
	row := entity.AuditRow{
		RequestID:    cand.RequestID,
		Question:     question,
		Prompt:       cand.Prompt.Serialize(),
		InputTokens:  cand.InputTokens,
		OutputTokens: cand.OutputTokens,
		Cost:         cand.Cost,
		SQLGenTime:   cand.Latency.Seconds(),
		SQLQuery:     cand.SQL,
	}
	if err := o.audit.Append(ctx, row); err != nil {
		// Auditing never fails the user-facing request.
		o.log.Error().Err(err).Str("request_id", cand.RequestID).Msg("audit append failed")
	}
}

// cost applies the configured per-token rates. Absent token counts
// yield an absent cost, never a negative one.
func (o *Orchestrator) cost(in, out *int) *float64 {
	if in == nil || out == nil {
		return nil
	}
	v := (float64(*in)*o.rates.InputTokenRate + float64(*out)*o.rates.OutputTokenRate) * o.rates.Scale
	return &v
}

// ExtractSQL pulls the SQL statement out of a model response that may
// wrap it in markdown fences or prose. An empty or whitespace-only
// response yields "".
func ExtractSQL(content string) string {
	trimmed := strings.TrimSpace(content)

	if idx := sqlFenceIndex(trimmed); idx >= 0 {
		rest := trimmed[idx+len("```sql"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}

	if strings.HasPrefix(trimmed, "```") {
		inner := strings.TrimPrefix(trimmed, "```")
		if end := strings.Index(inner, "```"); end >= 0 {
			inner = inner[:end]
		}
		return strings.TrimSpace(inner)
	}

	return trimmed
}

// sqlFenceIndex locates a ```sql fence with any tag casing. All
// indexing happens on s itself; lowercasing the whole string first
// would shift byte offsets when a rune changes width under case
// folding.
func sqlFenceIndex(s string) int {
	for from := 0; ; {
		i := strings.Index(s[from:], "```")
		if i < 0 {
			return -1
		}
		i += from
		tag := i + len("```")
		if tag+len("sql") <= len(s) && strings.EqualFold(s[tag:tag+len("sql")], "sql") {
			return i
		}
		from = tag
	}
}
