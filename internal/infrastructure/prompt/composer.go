// Package prompt renders task-specific instruction templates into the text
// payload sent to the model backend. Rendering is a pure function: no I/O,
// and identical inputs always produce byte-identical output.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/jswirl/ollash/internal/domain"
)

// templateData is the flattened view the templates render from. Every
// field is a plain string so output depends on nothing but the input.
type templateData struct {
	Query   string
	Command string
	Context string
	History string
}

var templates = template.Must(template.New("tasks").Parse(taskTemplates))

// Render produces the payload for the given task input.
func Render(in domain.PromptInput) (string, error) {
	name := string(in.Task)
	if templates.Lookup(name) == nil {
		return "", fmt.Errorf("unknown prompt task %q", in.Task)
	}
	data := templateData{
		Query:   strings.TrimSpace(in.Query),
		Command: strings.TrimSpace(in.Command),
		Context: contextSnippet(in.Snapshot),
		History: historySnippet(in.History),
	}
	if len(in.Outcomes) > 0 {
		data.History = outcomesSnippet(in.Outcomes)
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()) + "\n", nil
}

// contextSnippet flattens a snapshot into stable, line-oriented text.
// Field order is fixed so rendering stays deterministic.
func contextSnippet(s domain.Snapshot) string {
	var lines []string
	if s.WorkingDir != "" {
		lines = append(lines, "Directory: "+s.WorkingDir)
	}
	if s.Shell != "" {
		lines = append(lines, "Shell: "+s.Shell)
	}
	if s.OS != "" {
		lines = append(lines, "OS: "+s.OS)
	}
	if s.ProjectType != "" {
		lines = append(lines, "Project type: "+s.ProjectType)
	}
	if s.Git != nil {
		lines = append(lines, fmt.Sprintf("Git: branch %s, %d modified files", s.Git.Branch, s.Git.ModifiedCount))
	}
	if len(s.Entries) > 0 {
		lines = append(lines, "Directory contents: "+strings.Join(s.Entries, ", "))
	}
	if len(s.Recent) > 0 {
		lines = append(lines, "Recent commands:")
		for _, e := range s.Recent {
			lines = append(lines, fmt.Sprintf("  %q -> %s", e.Query, e.Command))
		}
	}
	return strings.Join(lines, "\n")
}

func historySnippet(entries []domain.HistoryEntry) string {
	var lines []string
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s | %q -> %s", e.Timestamp.UTC().Format("2006-01-02 15:04"), e.Query, e.Command))
	}
	return strings.Join(lines, "\n")
}

// outcomesSnippet flattens audit records, carrying outcome and exit status
// so the analysis can spot failing or declined patterns.
func outcomesSnippet(records []domain.AuditRecord) string {
	var lines []string
	for _, r := range records {
		status := string(r.Outcome)
		if r.Outcome == domain.OutcomeExecuted && r.ExitCode != 0 {
			status = fmt.Sprintf("executed, exit %d", r.ExitCode)
		}
		if r.Warned {
			status += ", warned"
		}
		lines = append(lines, fmt.Sprintf("%s | %q -> %s [%s]", r.Timestamp.UTC().Format("2006-01-02 15:04"), r.Query, r.Command, status))
	}
	return strings.Join(lines, "\n")
}

// commandOnly is the shared output-format constraint of the generation
// tasks. The sanitizer downstream still strips fences the model emits
// despite it.
const taskTemplates = `
{{define "commandOnly" -}}
Respond with only the shell command. No markdown, no code fences, no quotes, no explanation.
{{- end}}

{{define "generate" -}}
You are a shell command generator. Convert the request into a single POSIX shell command.
{{template "commandOnly"}}

Request: {{.Query}}
{{- end}}

{{define "contextual-generate" -}}
You are a shell command generator. Convert the request into a single POSIX shell command suited to this environment.
{{template "commandOnly"}}

Environment:
{{.Context}}

Request: {{.Query}}
{{- end}}

{{define "explain" -}}
Explain what the following shell command does, part by part. Be concise. Mention any destructive effects explicitly.

Command: {{.Command}}
{{- end}}

{{define "improve" -}}
Suggest an improved version of the following shell command: safer flags, better portability, clearer output. Show the improved command first, then a short rationale.

Command: {{.Command}}
{{- end}}

{{define "alternatives" -}}
List up to three alternative shell commands that achieve the same result as the following command. One per line, each followed by a one-sentence tradeoff.

Command: {{.Command}}
{{- end}}

{{define "safety-analysis" -}}
Analyze the following shell command for destructive or irreversible effects. State what it would change on the system, what could go wrong, and whether a cautious operator should run it.

Command: {{.Command}}
{{- end}}

{{define "history-analysis" -}}
The following are recent natural-language requests and the shell commands generated for them. Identify recurring patterns, suggest aliases or scripts that would save the user time, and point out any risky habits.

History:
{{.History}}
{{- end}}
`
