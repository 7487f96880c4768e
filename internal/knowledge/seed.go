package knowledge

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"sqlgate/internal/domain/repository"
)

// Seed loads a corpus into the knowledge store. It takes the writer
// capability and the records explicitly; there is no module-level
// mutable state. Run once before serving; a failed record aborts the
// run so a partial seed is visible instead of silent.
func Seed(ctx context.Context, w repository.KnowledgeWriter, c Corpus, log zerolog.Logger) error {
	log.Info().Int("count", len(c.DDL)).Msg("seeding DDL statements")
	for i, ddl := range c.DDL {
		if err := w.AddDDL(ctx, ddl); err != nil {
			return fmt.Errorf("seed ddl %d: %w", i, err)
		}
	}

	log.Info().Int("count", len(c.Docs)).Msg("seeding documentation")
	for i, doc := range c.Docs {
		if err := w.AddDoc(ctx, doc); err != nil {
			return fmt.Errorf("seed documentation %d: %w", i, err)
		}
	}

	log.Info().Int("count", len(c.Examples)).Msg("seeding question-SQL pairs")
	for i, pair := range c.Examples {
		if err := w.AddExample(ctx, pair); err != nil {
			return fmt.Errorf("seed example %q: %w", pair.Question, err)
		}
		log.Debug().Int("idx", i).Str("question", pair.Question).Msg("ingested")
	}

	return nil
}
