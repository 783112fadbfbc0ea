package domain

import "time"

// HistoryEntry is one line of the append-only query log. Entries are
// written once the query→command mapping exists, regardless of whether the
// command is ultimately executed.
type HistoryEntry struct {
	Timestamp time.Time
	Query     string
	Command   string
}

// AuditRecord captures the terminal outcome of a pipeline run for the
// execution audit log.
type AuditRecord struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Query      string    `json:"query"`
	Command    string    `json:"command"`
	Warned     bool      `json:"warned"`
	Reasons    []string  `json:"reasons,omitempty"`
	Outcome    Outcome   `json:"outcome"`
	ExitCode   int       `json:"exit_code"`
	DurationMS int64     `json:"duration_ms"`
}

// AuditSummary aggregates audit records for display.
type AuditSummary struct {
	Total        int
	Executed     int
	Skipped      int
	Warned       int
	NonZeroExits int
}
