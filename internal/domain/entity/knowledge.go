package entity

// QuestionSQL is a training exemplar pairing a natural-language question
// with the SQL that answers it. Immutable once stored; retrieved as a
// few-shot demonstration, never mutated.
type QuestionSQL struct {
	Question string `json:"question"`
	SQL      string `json:"sql"`
}

// DDLEntry is a single schema definition fragment.
type DDLEntry struct {
	Statement string `json:"ddl"`
}

// DocEntry is a free-form schema explanation passage.
type DocEntry struct {
	Text string `json:"documentation"`
}

// RetrievedContext is the per-request grounding bundle. Each slice is
// ordered by descending similarity and may be empty when retrieval
// degrades. Owned by one in-flight request, discarded after prompt
// assembly.
type RetrievedContext struct {
	Examples []QuestionSQL
	DDL      []DDLEntry
	Docs     []DocEntry
}
