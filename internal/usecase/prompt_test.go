package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlgate/internal/domain/entity"
)

func TestBuildPromptDeterministic(t *testing.T) {
	rc := entity.RetrievedContext{
		Examples: []entity.QuestionSQL{{Question: "q1", SQL: "SELECT 1;"}},
		DDL:      []entity.DDLEntry{{Statement: "CREATE TABLE t (id INT);"}},
		Docs:     []entity.DocEntry{{Text: "Table t holds ids."}},
	}

	first := BuildPrompt("", "how many rows?", rc)
	second := BuildPrompt("", "how many rows?", rc)

	require.Equal(t, first, second)
}

func TestBuildPromptOrdering(t *testing.T) {
	ddl := "CREATE TABLE `client` (\n  `client_id` INT,\n  `gender` TEXT,\n  `birth_date` DATE,\n  `district_id` INT\n);"
	question := "How many total clients does the bank have?"
	rc := entity.RetrievedContext{
		Examples: []entity.QuestionSQL{{
			Question: question,
			SQL:      "SELECT COUNT(client_id) FROM client;",
		}},
		DDL:  []entity.DDLEntry{{Statement: ddl}},
		Docs: []entity.DocEntry{{Text: "Table `client`: demographic information."}},
	}

	prompt := BuildPrompt("", question, rc)

	// system, user/assistant example pair, final question
	require.Len(t, prompt, 4)

	require.Equal(t, entity.RoleSystem, prompt[0].Role)
	assert.Contains(t, prompt[0].Content, ddl)
	assert.Contains(t, prompt[0].Content, "demographic information")

	assert.Equal(t, entity.RoleUser, prompt[1].Role)
	assert.Equal(t, question, prompt[1].Content)
	assert.Equal(t, entity.RoleAssistant, prompt[2].Role)
	assert.Equal(t, "SELECT COUNT(client_id) FROM client;", prompt[2].Content)

	last := prompt[len(prompt)-1]
	assert.Equal(t, entity.RoleUser, last.Role)
	assert.Equal(t, question, last.Content)
}

func TestBuildPromptEmptyContext(t *testing.T) {
	prompt := BuildPrompt("", "anything", entity.RetrievedContext{})

	require.Len(t, prompt, 2)
	assert.Equal(t, entity.RoleSystem, prompt[0].Role)
	assert.NotContains(t, prompt[0].Content, "===Tables")
	assert.NotContains(t, prompt[0].Content, "===Additional Context")
	assert.Equal(t, "anything", prompt[1].Content)
}

func TestBuildPromptCustomInstructions(t *testing.T) {
	prompt := BuildPrompt("Custom instructions.", "q", entity.RetrievedContext{})

	assert.True(t, strings.HasPrefix(prompt[0].Content, "Custom instructions."))
	assert.NotContains(t, prompt[0].Content, DefaultInstructions)
}

func TestBuildPromptSkipsIncompleteExamples(t *testing.T) {
	rc := entity.RetrievedContext{
		Examples: []entity.QuestionSQL{
			{Question: "q1", SQL: ""},
			{Question: "", SQL: "SELECT 1;"},
		},
	}

	prompt := BuildPrompt("", "q", rc)
	require.Len(t, prompt, 2) // system + question only
}
