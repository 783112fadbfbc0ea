package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jswirl/ollash/internal/domain"
	"github.com/jswirl/ollash/internal/pkg/logger"
)

func newTaskRunner(model *stubModel, audit *stubAudit) *TaskRunner {
	return &TaskRunner{
		Config: stubConfig{cfg: testConfig()},
		Model:  model,
		Audit:  audit,
		Logger: logger.NewNop(),
	}
}

func TestDescribeUsesConfiguredModelByDefault(t *testing.T) {
	model := &stubModel{response: "lists files"}
	r := newTaskRunner(model, &stubAudit{})

	if _, err := r.Describe(context.Background(), domain.TaskExplain, "ls -la", ""); err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if len(model.opts) != 1 || model.opts[0].Model != "llama3.2" {
		t.Fatalf("expected configured model, got %+v", model.opts)
	}
}

func TestDescribeModelOverride(t *testing.T) {
	model := &stubModel{response: "lists files"}
	r := newTaskRunner(model, &stubAudit{})

	if _, err := r.Describe(context.Background(), domain.TaskExplain, "ls -la", "codellama"); err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if len(model.opts) != 1 || model.opts[0].Model != "codellama" {
		t.Fatalf("expected override model, got %+v", model.opts)
	}
}

func TestDescribeRejectsEmptyCommand(t *testing.T) {
	r := newTaskRunner(&stubModel{}, &stubAudit{})
	if _, err := r.Describe(context.Background(), domain.TaskExplain, "", ""); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestAnalyzeHistoryFeedsAuditRecords(t *testing.T) {
	audit := &stubAudit{records: []domain.AuditRecord{
		{
			Timestamp: time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
			Query:     "free disk space",
			Command:   "df -h",
			Outcome:   domain.OutcomeExecuted,
		},
		{
			Timestamp: time.Date(2026, 8, 20, 10, 31, 0, 0, time.UTC),
			Query:     "delete everything",
			Command:   "rm -rf /",
			Warned:    true,
			Outcome:   domain.OutcomeSkipped,
		},
	}}
	model := &stubModel{response: "you decline dangerous commands, good"}
	r := newTaskRunner(model, audit)

	if _, err := r.AnalyzeHistory(context.Background(), 10); err != nil {
		t.Fatalf("AnalyzeHistory() error = %v", err)
	}
	if len(model.prompts) != 1 {
		t.Fatalf("expected one generation, got %d", len(model.prompts))
	}
	payload := model.prompts[0]
	for _, want := range []string{"df -h", "rm -rf /", "skipped", "warned"} {
		if !strings.Contains(payload, want) {
			t.Fatalf("analysis payload missing %q:\n%s", want, payload)
		}
	}
}

func TestAnalyzeHistoryEmptyAuditLog(t *testing.T) {
	r := newTaskRunner(&stubModel{}, &stubAudit{})
	if _, err := r.AnalyzeHistory(context.Background(), 10); err == nil {
		t.Fatal("expected error when nothing is recorded")
	}
}
