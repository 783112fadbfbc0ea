// Package ports defines the interfaces between the application core and the
// infrastructure adapters. The pipeline depends on these abstractions only;
// concrete implementations live under internal/infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/jswirl/ollash/internal/domain"
)

// ConfigStore loads and mutates the persisted configuration. Mutation is
// restricted to the fixed key set; unknown keys are rejected.
type ConfigStore interface {
	Load(context.Context) (domain.Config, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ContextBuilder assembles the per-query environment snapshot. Population
// is best-effort: probe failures degrade to absent fields, never errors.
type ContextBuilder interface {
	Build(context.Context, domain.Config) domain.Snapshot
}

// GenerateOptions parameterize a single model request.
type GenerateOptions struct {
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// ModelClient talks to the generation backend. Generate issues exactly one
// request per call; retries are the caller's responsibility.
type ModelClient interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	ListModels(ctx context.Context) ([]string, error)
	IsReachable(ctx context.Context) bool
}

// Classifier evaluates a candidate command against the tiered rule table.
// Classification is total: it always produces a verdict.
type Classifier interface {
	Classify(command string, level domain.SafetyLevel) domain.RiskVerdict
	Rules() []domain.Rule
}

// HistoryStore is the append-only bounded query log. Recent returns the n
// most recent entries oldest first and never fails on an empty store.
type HistoryStore interface {
	Append(domain.HistoryEntry) error
	Recent(n int) ([]domain.HistoryEntry, error)
	Clear() error
}

// AuditLog records terminal pipeline outcomes for later analysis.
type AuditLog interface {
	Record(domain.AuditRecord) error
	Recent(n int) ([]domain.AuditRecord, error)
	Summary() (domain.AuditSummary, error)
}

// Executor runs a command string as a subprocess. This is the single point
// where model-generated text crosses into process execution.
type Executor interface {
	Execute(ctx context.Context, command string) (domain.ExecutionResult, error)
}

// Prompter blocks on a single yes/no read. Any answer other than an
// affirmative token is a decline.
type Prompter interface {
	Confirm(command string, verdict domain.RiskVerdict) (bool, error)
	Enabled() bool
}

// Clipboard provides best-effort clipboard integration.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger is the structured logging abstraction used across layers.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
