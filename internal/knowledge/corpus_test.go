package knowledge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlgate/internal/domain/entity"
)

func TestFinancialCorpusShape(t *testing.T) {
	c := Financial()

	assert.Len(t, c.DDL, 8)
	assert.Len(t, c.Docs, 8)
	assert.GreaterOrEqual(t, len(c.Examples), 40)

	for _, ddl := range c.DDL {
		assert.True(t, strings.HasPrefix(ddl.Statement, "CREATE TABLE"))
	}
	for _, pair := range c.Examples {
		assert.NotEmpty(t, pair.Question)
		assert.NotEmpty(t, pair.SQL)
	}
}

func TestFinancialCorpusContainsClientCountPair(t *testing.T) {
	c := Financial()

	found := false
	for _, pair := range c.Examples {
		if pair.Question == "How many total clients does the bank have?" {
			found = true
			assert.Equal(t, "SELECT COUNT(client_id) FROM client;", pair.SQL)
		}
	}
	assert.True(t, found)

	hasClientDDL := false
	for _, ddl := range c.DDL {
		if strings.Contains(ddl.Statement, "CREATE TABLE `client`") {
			hasClientDDL = true
		}
	}
	assert.True(t, hasClientDDL)
}

// ----- Seed -----

type memWriter struct {
	examples []entity.QuestionSQL
	ddl      []entity.DDLEntry
	docs     []entity.DocEntry
	failAt   int
	writes   int
}

func (w *memWriter) bump() error {
	w.writes++
	if w.failAt > 0 && w.writes >= w.failAt {
		return errors.New("store unreachable")
	}
	return nil
}

func (w *memWriter) AddExample(ctx context.Context, pair entity.QuestionSQL) error {
	if err := w.bump(); err != nil {
		return err
	}
	w.examples = append(w.examples, pair)
	return nil
}

func (w *memWriter) AddDDL(ctx context.Context, ddl entity.DDLEntry) error {
	if err := w.bump(); err != nil {
		return err
	}
	w.ddl = append(w.ddl, ddl)
	return nil
}

func (w *memWriter) AddDoc(ctx context.Context, doc entity.DocEntry) error {
	if err := w.bump(); err != nil {
		return err
	}
	w.docs = append(w.docs, doc)
	return nil
}

func TestSeedLoadsEverything(t *testing.T) {
	w := &memWriter{}
	c := Financial()

	require.NoError(t, Seed(context.Background(), w, c, zerolog.Nop()))

	assert.Len(t, w.ddl, len(c.DDL))
	assert.Len(t, w.docs, len(c.Docs))
	assert.Len(t, w.examples, len(c.Examples))
}

func TestSeedAbortsOnFailure(t *testing.T) {
	w := &memWriter{failAt: 3}

	err := Seed(context.Background(), w, Financial(), zerolog.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unreachable")
}
