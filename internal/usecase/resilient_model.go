package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"sqlgate/internal/domain/entity"
	"sqlgate/internal/domain/repository"
)

// ResilientModel wraps a ChatModel with a per-call timeout, bounded
// retry with exponential backoff, and an optional fallback model that
// is tried once when the primary is exhausted.
type ResilientModel struct {
	primary    repository.ChatModel
	fallback   repository.ChatModel // optional, may be nil
	maxRetries int
	baseDelay  time.Duration
	timeout    time.Duration
	log        zerolog.Logger
}

func NewResilientModel(primary, fallback repository.ChatModel, timeout time.Duration, log zerolog.Logger) *ResilientModel {
	return &ResilientModel{
		primary:    primary,
		fallback:   fallback,
		maxRetries: 2, // Total 3 attempts for the primary
		baseDelay:  500 * time.Millisecond,
		timeout:    timeout,
		log:        log,
	}
}

func (r *ResilientModel) Generate(ctx context.Context, prompt entity.Prompt) (*entity.GenerationResult, error) {
	// Scoped timeout so one slow generation can't hang the server.
	resCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.executeWithRetry(resCtx, r.primary, prompt)
	if err == nil {
		return resp, nil
	}

	if r.fallback == nil {
		return nil, err
	}

	r.log.Warn().Err(err).Msg("primary model exhausted, switching to fallback")

	resp, fbErr := r.fallback.Generate(resCtx, prompt)
	if fbErr != nil {
		return nil, fmt.Errorf("both primary and fallback failed: %w", fbErr)
	}
	return resp, nil
}

func (r *ResilientModel) executeWithRetry(ctx context.Context, m repository.ChatModel, prompt entity.Prompt) (*entity.GenerationResult, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		resp, err := m.Generate(ctx, prompt)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !r.isRetryable(err) || attempt == r.maxRetries {
			break
		}

		wait := r.calculateBackoff(attempt)
		select {
		case <-time.After(wait):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (r *ResilientModel) isRetryable(err error) bool {
	msg := strings.ToLower(err.Error())
	// Retry on Rate Limits (429) and Server Errors (5xx)
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "overloaded") ||
		strings.Contains(msg, "deadline")
}

func (r *ResilientModel) calculateBackoff(attempt int) time.Duration {
	backoff := float64(r.baseDelay) * float64(int(1)<<attempt)
	jitter := (rand.Float64() * 0.2) * backoff // 20% jitter
	return time.Duration(backoff + jitter)
}
