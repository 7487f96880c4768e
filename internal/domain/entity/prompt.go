package entity

import (
	"fmt"
	"strings"
)

// Role tags a prompt message the way chat-completion backends expect.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Prompt is the ordered message sequence the model conditions on.
// Order is significant: instructions, grounding, few-shot pairs, then
// the actual question. Built once per request and never mutated.
type Prompt []Message

// Serialize renders the prompt the way the audit log stores it:
// one "(role) content" line per message, newline-joined.
func (p Prompt) Serialize() string {
	lines := make([]string, len(p))
	for i, m := range p {
		lines[i] = fmt.Sprintf("(%s) %s", m.Role, m.Content)
	}
	return strings.Join(lines, "\n")
}
