package domain

// Snapshot holds environment data injected into prompts. It is rebuilt per
// query and never persisted. Every field is best-effort: a failed probe
// leaves the field empty rather than failing the query.
type Snapshot struct {
	WorkingDir  string
	Shell       string
	OS          string
	Entries     []string
	Git         *GitStatus
	ProjectType string
	Recent      []HistoryEntry
}

// GitStatus is a compact repository summary.
type GitStatus struct {
	Branch        string
	ModifiedCount int
}

// Empty reports whether the snapshot carries nothing beyond defaults.
func (s Snapshot) Empty() bool {
	return s.WorkingDir == "" && len(s.Entries) == 0 && s.Git == nil &&
		s.ProjectType == "" && len(s.Recent) == 0
}
