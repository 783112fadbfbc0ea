package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jswirl/ollash/internal/domain"
)

var (
	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("2"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// renderResult prints the terminal state of a pipeline run. The prompter
// has already shown the command and warnings for interactive runs, so this
// stays quiet about anything the user has seen.
func renderResult(out io.Writer, result domain.PipelineResult) {
	switch result.Outcome {
	case domain.OutcomeExecuted:
		if result.Execution != nil && result.Execution.ExitCode != 0 {
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("exited with status %d", result.Execution.ExitCode)))
		}
	case domain.OutcomeSkipped:
		if result.Prompted {
			// The prompter displayed the command and warnings; the decline
			// itself is the user's own action.
			return
		}
		fmt.Fprintf(out, "%s\n", commandStyle.Render(result.Command))
		for _, reason := range result.Verdict.Reasons {
			fmt.Fprintf(out, "%s %s\n", warningStyle.Render("warning:"), reason)
		}
		fmt.Fprintln(out, mutedStyle.Render("not executed"))
	}
}

// renderVerdict prints the local rule verdict for the audit command.
func renderVerdict(out io.Writer, verdict domain.RiskVerdict, level domain.SafetyLevel) {
	if verdict.Safe() {
		fmt.Fprintf(out, "%s at safety level %s\n", okStyle.Render("No rules matched"), level)
		return
	}
	fmt.Fprintf(out, "%s at safety level %s:\n", warningStyle.Render("Warnings"), level)
	for _, reason := range verdict.Reasons {
		fmt.Fprintf(out, "  - %s\n", reason)
	}
}

// renderHealthReport prints doctor checks, one line per check.
func renderHealthReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		var badge string
		switch check.Status {
		case domain.HealthOK:
			badge = okStyle.Render("ok   ")
		case domain.HealthWarn:
			badge = warningStyle.Render("warn ")
		default:
			badge = errorStyle.Render("error")
		}
		fmt.Fprintf(out, "%s %-12s %s\n", badge, check.Name, check.Details)
	}
}
