package usecase

import (
	"strings"

	"sqlgate/internal/domain/entity"
)

// DefaultInstructions opens the system message when no custom initial
// prompt is configured.
const DefaultInstructions = "You are a SQL expert. Please help to generate a SQL query to answer the question. Your response should ONLY be based on the given context and follow the response guidelines and format instructions."

const responseGuidelines = `===Response Guidelines
1. If the provided context is sufficient, generate a valid SQL query without any explanations for the question.
2. If the provided context is insufficient, explain why it can't be generated.
3. Use the most relevant table(s) from the provided schema.
4. Ensure that the output SQL is executable and free of syntax errors.`

// BuildPrompt deterministically renders the grounding context into an
// ordered message sequence: one system message (instructions, schema,
// documentation, guidelines), one user/assistant pair per retrieved
// example, and the actual question last. Identical inputs always yield
// an identical sequence. Empty context sections are omitted rather than
// failing, so a fully degraded retrieval still produces a usable prompt.
func BuildPrompt(instructions, question string, rc entity.RetrievedContext) entity.Prompt {
	if instructions == "" {
		instructions = DefaultInstructions
	}

	var b strings.Builder
	b.WriteString(instructions)

	if len(rc.DDL) > 0 {
		b.WriteString("\n\n===Tables\n")
		for _, ddl := range rc.DDL {
			b.WriteString(ddl.Statement)
			b.WriteString("\n\n")
		}
	}

	if len(rc.Docs) > 0 {
		b.WriteString("\n===Additional Context\n\n")
		for _, doc := range rc.Docs {
			b.WriteString(doc.Text)
			b.WriteString("\n\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(responseGuidelines)

	prompt := entity.Prompt{{Role: entity.RoleSystem, Content: b.String()}}
	for _, ex := range rc.Examples {
		if ex.Question == "" || ex.SQL == "" {
			continue
		}
		prompt = append(prompt,
			entity.Message{Role: entity.RoleUser, Content: ex.Question},
			entity.Message{Role: entity.RoleAssistant, Content: ex.SQL},
		)
	}
	prompt = append(prompt, entity.Message{Role: entity.RoleUser, Content: question})

	return prompt
}
