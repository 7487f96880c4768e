package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptSerialize(t *testing.T) {
	p := Prompt{
		{Role: RoleSystem, Content: "You generate SQL."},
		{Role: RoleUser, Content: "How many clients?"},
		{Role: RoleAssistant, Content: "SELECT COUNT(client_id) FROM client;"},
	}

	want := "(system) You generate SQL.\n" +
		"(user) How many clients?\n" +
		"(assistant) SELECT COUNT(client_id) FROM client;"
	assert.Equal(t, want, p.Serialize())
}

func TestPromptSerializeEmpty(t *testing.T) {
	assert.Equal(t, "", Prompt{}.Serialize())
}
