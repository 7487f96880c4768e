package entity

import "time"

// GenerationResult is what a chat backend returns: raw text plus token
// usage. Token counts are pointers because not every backend reports
// usage; cost computation tolerates their absence.
type GenerationResult struct {
	Content      string
	InputTokens  *int
	OutputTokens *int
}

// SQLCandidate is the orchestrator's answer to one question. SQL always
// holds something presentable: the extracted statement, or a descriptive
// failure string when generation went wrong.
type SQLCandidate struct {
	RequestID    string        `json:"request_id"`
	SQL          string        `json:"sql"`
	Prompt       Prompt        `json:"-"`
	InputTokens  *int          `json:"input_tokens,omitempty"`
	OutputTokens *int          `json:"output_tokens,omitempty"`
	Cost         *float64      `json:"cost,omitempty"`
	Latency      time.Duration `json:"-"`
}

// AuditRow is the unit of persistence: one row per question lifecycle.
// The fetch columns are filled in later by the execution stage, keyed
// by RequestID.
type AuditRow struct {
	RequestID    string
	Question     string
	Prompt       string
	InputTokens  *int
	OutputTokens *int
	Cost         *float64
	SQLGenTime   float64
	SQLQuery     string
}
