package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlgate/internal/domain/entity"
)

type scriptedModel struct {
	errs  []error
	calls int
}

func (m *scriptedModel) Generate(ctx context.Context, p entity.Prompt) (*entity.GenerationResult, error) {
	idx := m.calls
	m.calls++
	if idx < len(m.errs) && m.errs[idx] != nil {
		return nil, m.errs[idx]
	}
	return &entity.GenerationResult{Content: "SELECT 1;"}, nil
}

func TestResilientModelRetriesTransientErrors(t *testing.T) {
	primary := &scriptedModel{errs: []error{
		errors.New("429 rate limited"),
		errors.New("503 overloaded"),
		nil,
	}}
	r := NewResilientModel(primary, nil, 10*time.Second, zerolog.Nop())
	r.baseDelay = time.Millisecond

	res, err := r.Generate(context.Background(), entity.Prompt{})

	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", res.Content)
	assert.Equal(t, 3, primary.calls)
}

func TestResilientModelDoesNotRetryPermanentErrors(t *testing.T) {
	primary := &scriptedModel{errs: []error{errors.New("400 bad request"), nil}}
	r := NewResilientModel(primary, nil, 10*time.Second, zerolog.Nop())
	r.baseDelay = time.Millisecond

	_, err := r.Generate(context.Background(), entity.Prompt{})

	require.Error(t, err)
	assert.Equal(t, 1, primary.calls)
}

func TestResilientModelFallsBack(t *testing.T) {
	primary := &scriptedModel{errs: []error{errors.New("400 invalid deployment")}}
	fallback := &scriptedModel{}
	r := NewResilientModel(primary, fallback, 10*time.Second, zerolog.Nop())
	r.baseDelay = time.Millisecond

	res, err := r.Generate(context.Background(), entity.Prompt{})

	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", res.Content)
	assert.Equal(t, 1, fallback.calls)
}

func TestResilientModelBothFail(t *testing.T) {
	primary := &scriptedModel{errs: []error{errors.New("400 nope")}}
	fallback := &scriptedModel{errs: []error{errors.New("401 unauthorized")}}
	r := NewResilientModel(primary, fallback, 10*time.Second, zerolog.Nop())
	r.baseDelay = time.Millisecond

	_, err := r.Generate(context.Background(), entity.Prompt{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "both primary and fallback failed")
}
