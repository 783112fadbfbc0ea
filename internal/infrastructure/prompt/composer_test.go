package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jswirl/ollash/internal/domain"
)

func TestRenderGenerateContainsConstraintAndQuery(t *testing.T) {
	out, err := Render(domain.PromptInput{
		Task:  domain.TaskGenerate,
		Query: "list files sorted by size",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "only the shell command")
	assert.Contains(t, out, "Request: list files sorted by size")
	assert.NotContains(t, out, "Environment:")
}

func TestRenderContextualGenerateEmbedsSnapshot(t *testing.T) {
	out, err := Render(domain.PromptInput{
		Task:  domain.TaskContextualGenerate,
		Query: "build the project",
		Snapshot: domain.Snapshot{
			WorkingDir:  "/home/dev/proj",
			Shell:       "zsh",
			OS:          "linux",
			ProjectType: "go",
			Git:         &domain.GitStatus{Branch: "main", ModifiedCount: 2},
			Entries:     []string{"go.mod", "main.go"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Directory: /home/dev/proj")
	assert.Contains(t, out, "Project type: go")
	assert.Contains(t, out, "Git: branch main, 2 modified files")
	assert.Contains(t, out, "go.mod, main.go")
	assert.Contains(t, out, "Request: build the project")
}

func TestRenderCommandTasks(t *testing.T) {
	tasks := map[domain.Task]string{
		domain.TaskExplain:        "Explain what",
		domain.TaskImprove:        "improved version",
		domain.TaskAlternatives:   "alternative shell commands",
		domain.TaskSafetyAnalysis: "destructive or irreversible",
	}
	for task, marker := range tasks {
		out, err := Render(domain.PromptInput{Task: task, Command: "tar -czf backup.tgz ."})
		require.NoError(t, err, string(task))
		assert.Contains(t, out, marker, string(task))
		assert.Contains(t, out, "Command: tar -czf backup.tgz .", string(task))
	}
}

func TestRenderHistoryAnalysis(t *testing.T) {
	ts := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
	out, err := Render(domain.PromptInput{
		Task: domain.TaskHistoryAnalysis,
		History: []domain.HistoryEntry{
			{Timestamp: ts, Query: "list files", Command: "ls -la"},
			{Timestamp: ts.Add(time.Minute), Query: "disk usage", Command: "du -sh *"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, out, `"list files" -> ls -la`)
	assert.Contains(t, out, `"disk usage" -> du -sh *`)
}

func TestRenderHistoryAnalysisFromOutcomes(t *testing.T) {
	ts := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
	out, err := Render(domain.PromptInput{
		Task: domain.TaskHistoryAnalysis,
		Outcomes: []domain.AuditRecord{
			{Timestamp: ts, Query: "disk usage", Command: "du -sh *", Outcome: domain.OutcomeExecuted, ExitCode: 1},
			{Timestamp: ts.Add(time.Minute), Query: "wipe it", Command: "rm -rf /", Warned: true, Outcome: domain.OutcomeSkipped},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, out, `"disk usage" -> du -sh * [executed, exit 1]`)
	assert.Contains(t, out, `"wipe it" -> rm -rf / [skipped, warned]`)
}

func TestRenderDeterministic(t *testing.T) {
	in := domain.PromptInput{
		Task:  domain.TaskContextualGenerate,
		Query: "find large logs",
		Snapshot: domain.Snapshot{
			WorkingDir: "/var/log",
			Shell:      "bash",
			OS:         "linux",
			Entries:    []string{"syslog", "nginx"},
			Recent: []domain.HistoryEntry{
				{Timestamp: time.Unix(0, 0), Query: "q", Command: "c"},
			},
		},
	}
	first, err := Render(in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Render(in)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestRenderUnknownTask(t *testing.T) {
	_, err := Render(domain.PromptInput{Task: "translate"})
	require.Error(t, err)
}

func TestRenderTrailingNewline(t *testing.T) {
	out, err := Render(domain.PromptInput{Task: domain.TaskGenerate, Query: "q"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}
