package domain

// Task selects one of the fixed prompt templates.
type Task string

const (
	TaskGenerate           Task = "generate"
	TaskContextualGenerate Task = "contextual-generate"
	TaskExplain            Task = "explain"
	TaskImprove            Task = "improve"
	TaskAlternatives       Task = "alternatives"
	TaskSafetyAnalysis     Task = "safety-analysis"
	TaskHistoryAnalysis    Task = "history-analysis"
)

// PromptInput feeds the composer. Query is the natural-language request for
// generation tasks; Command is the subject of the command-centric tasks;
// Outcomes (preferred) or History drives the history-analysis task.
type PromptInput struct {
	Task     Task
	Query    string
	Command  string
	Snapshot Snapshot
	History  []HistoryEntry
	Outcomes []AuditRecord
}
