package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Query is the immutable record of one invocation.
type Query struct {
	ID   uuid.UUID
	Text string
	Time time.Time
}

// NewQuery stamps a query at invocation time.
func NewQuery(text string) Query {
	return Query{ID: uuid.New(), Text: text, Time: time.Now()}
}

// PipelineRequest carries one query through the pipeline.
type PipelineRequest struct {
	Context         context.Context
	Query           Query
	ModelOverride   string
	AssumeYes       bool
	NoExec          bool
	CopyToClipboard bool
	TimeoutOverride time.Duration
}

// Outcome is the terminal state of a pipeline run.
type Outcome string

const (
	OutcomeExecuted Outcome = "executed"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeFailed   Outcome = "failed"
)

// PipelineResult is the canonical response propagated back to the CLI.
// Prompted records whether an interactive confirmation was shown, so the
// rendering layer knows what the user has already seen.
type PipelineResult struct {
	Query     Query
	Command   string
	Verdict   RiskVerdict
	Outcome   Outcome
	Prompted  bool
	Snapshot  Snapshot
	Execution *ExecutionResult
}

// ExecutionResult wraps details from the command executor.
type ExecutionResult struct {
	Ran        bool
	ExitCode   int
	DurationMS int64
	Err        error
}
