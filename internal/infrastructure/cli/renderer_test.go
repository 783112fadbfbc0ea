package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jswirl/ollash/internal/domain"
)

func TestRenderResultQuietAfterInteractiveDecline(t *testing.T) {
	var out bytes.Buffer
	renderResult(&out, domain.PipelineResult{
		Command:  "rm -rf /tmp/x",
		Verdict:  domain.RiskVerdict{Reasons: []string{"recursive deletion"}},
		Outcome:  domain.OutcomeSkipped,
		Prompted: true,
	})
	if out.Len() != 0 {
		t.Fatalf("prompter already showed everything, got %q", out.String())
	}
}

func TestRenderResultShowsNonInteractiveSkip(t *testing.T) {
	var out bytes.Buffer
	renderResult(&out, domain.PipelineResult{
		Command:  "rm -rf /tmp/x",
		Verdict:  domain.RiskVerdict{Reasons: []string{"recursive deletion"}},
		Outcome:  domain.OutcomeSkipped,
		Prompted: false,
	})
	text := out.String()
	for _, want := range []string{"rm -rf /tmp/x", "recursive deletion", "not executed"} {
		if !strings.Contains(text, want) {
			t.Fatalf("non-interactive skip output missing %q:\n%s", want, text)
		}
	}
}

func TestRenderResultSilentOnCleanExecution(t *testing.T) {
	var out bytes.Buffer
	renderResult(&out, domain.PipelineResult{
		Command:   "ls",
		Outcome:   domain.OutcomeExecuted,
		Execution: &domain.ExecutionResult{Ran: true},
	})
	if out.Len() != 0 {
		t.Fatalf("clean execution must add nothing, got %q", out.String())
	}
}
