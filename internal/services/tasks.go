package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jswirl/ollash/internal/domain"
	"github.com/jswirl/ollash/internal/infrastructure/prompt"
	"github.com/jswirl/ollash/internal/ports"
)

// TaskRunner serves the display-only tasks: explanation, improvement,
// alternatives, safety analysis and history analysis. Their output is
// rendered to the user and never enters the execution path.
type TaskRunner struct {
	Config ports.ConfigStore
	Model  ports.ModelClient
	Audit  ports.AuditLog
	Logger ports.Logger
}

// Describe runs a command-centric task against the model. An empty model
// selects the configured one.
func (t *TaskRunner) Describe(ctx context.Context, task domain.Task, command, model string) (string, error) {
	if command == "" {
		return "", errors.New("command must not be empty")
	}
	return t.generate(ctx, domain.PromptInput{Task: task, Command: command}, model)
}

// AnalyzeHistory feeds recent audit records, outcomes and exit codes
// included, through the history-analysis task.
func (t *TaskRunner) AnalyzeHistory(ctx context.Context, n int) (string, error) {
	if t.Audit == nil {
		return "", errors.New("audit log unavailable")
	}
	if n <= 0 {
		n = domain.DefaultMaxHistory
	}
	records, err := t.Audit.Recent(n)
	if err != nil {
		return "", fmt.Errorf("read audit log: %w", err)
	}
	if len(records) == 0 {
		return "", errors.New("no outcomes recorded yet")
	}
	return t.generate(ctx, domain.PromptInput{Task: domain.TaskHistoryAnalysis, Outcomes: records}, "")
}

func (t *TaskRunner) generate(ctx context.Context, in domain.PromptInput, model string) (string, error) {
	cfg, err := t.Config.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	if model == "" {
		model = cfg.GetModel()
	}
	payload, err := prompt.Render(in)
	if err != nil {
		return "", err
	}
	t.Logger.Debug("running display task", map[string]interface{}{"task": string(in.Task), "model": model})
	return t.Model.Generate(ctx, payload, ports.GenerateOptions{
		Model:       model,
		Temperature: cfg.GetTemperature(),
		Timeout:     cfg.GetGenerateTimeout(),
	})
}
