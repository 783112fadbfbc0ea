// Package services orchestrates the query-to-execution pipeline.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jswirl/ollash/internal/domain"
	"github.com/jswirl/ollash/internal/infrastructure/prompt"
	"github.com/jswirl/ollash/internal/pkg/sanitize"
	"github.com/jswirl/ollash/internal/ports"
)

// Pipeline sequences context assembly, prompt composition, generation,
// sanitization, classification, confirmation, history logging and
// execution. Each run produces exactly one terminal outcome.
type Pipeline struct {
	Config     ports.ConfigStore
	Context    ports.ContextBuilder
	Model      ports.ModelClient
	Classifier ports.Classifier
	History    ports.HistoryStore
	Audit      ports.AuditLog
	Executor   ports.Executor
	Prompter   ports.Prompter
	Clipboard  ports.Clipboard
	Logger     ports.Logger
}

// Run processes a single natural-language query. Transport, backend and
// empty-output failures abort immediately and no history is logged; once a
// candidate command exists it is logged before the execution decision
// resolves, so a declined command still feeds future context. Every
// terminal outcome, failures included, lands in the audit log.
func (p *Pipeline) Run(req domain.PipelineRequest) (domain.PipelineResult, error) {
	if p.Config == nil || p.Context == nil || p.Model == nil ||
		p.Classifier == nil || p.Executor == nil || p.Logger == nil {
		return domain.PipelineResult{}, errors.New("services.Pipeline dependencies not satisfied")
	}
	result, err := p.run(req)
	p.record(result)
	return result, err
}

func (p *Pipeline) run(req domain.PipelineRequest) (domain.PipelineResult, error) {
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}
	result := domain.PipelineResult{Query: req.Query, Outcome: domain.OutcomeFailed}

	cfg, err := p.Config.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("load config: %w", err)
	}

	snapshot := p.Context.Build(ctx, cfg)
	result.Snapshot = snapshot

	task := domain.TaskGenerate
	if !snapshot.Empty() {
		task = domain.TaskContextualGenerate
	}
	payload, err := prompt.Render(domain.PromptInput{
		Task:     task,
		Query:    req.Query.Text,
		Snapshot: snapshot,
	})
	if err != nil {
		return result, fmt.Errorf("compose prompt: %w", err)
	}

	model := req.ModelOverride
	if model == "" {
		model = cfg.GetModel()
	}
	timeout := req.TimeoutOverride
	if timeout <= 0 {
		timeout = cfg.GetGenerateTimeout()
	}

	p.Logger.Debug("generating command", map[string]interface{}{
		"query": req.Query.ID.String(),
		"model": model,
		"task":  string(task),
	})

	raw, err := p.Model.Generate(ctx, payload, ports.GenerateOptions{
		Model:       model,
		Temperature: cfg.GetTemperature(),
		Timeout:     timeout,
	})
	if err != nil {
		return result, err
	}

	command := sanitize.Command(raw)
	if command == "" {
		return result, domain.ErrEmptyCommand
	}
	result.Command = command

	result.Verdict = p.Classifier.Classify(command, cfg.GetSafetyLevel())

	if req.CopyToClipboard && p.Clipboard != nil && p.Clipboard.Enabled() {
		if err := p.Clipboard.Copy(command); err != nil {
			p.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
		}
	}

	// The decision point is reached: record the query→command mapping now,
	// before the answer is known.
	if cfg.HistoryEnabled && p.History != nil {
		entry := domain.HistoryEntry{
			Timestamp: req.Query.Time,
			Query:     req.Query.Text,
			Command:   command,
		}
		if err := p.History.Append(entry); err != nil {
			p.Logger.Warn("history append failed", map[string]interface{}{"error": err.Error()})
		}
	}

	approved, prompted := p.decide(req, cfg, result.Verdict, command)
	result.Prompted = prompted

	if !approved {
		result.Outcome = domain.OutcomeSkipped
		return result, nil
	}

	execResult, err := p.Executor.Execute(ctx, command)
	result.Execution = &execResult
	if err != nil {
		return result, fmt.Errorf("execute command: %w", err)
	}
	result.Outcome = domain.OutcomeExecuted
	return result, nil
}

// decide resolves the confirmation step. Auto-confirmation applies to safe
// verdicts only; everything else blocks on a single yes/no read where any
// non-affirmative answer declines. The second return reports whether an
// interactive prompt was actually shown.
func (p *Pipeline) decide(req domain.PipelineRequest, cfg domain.Config, verdict domain.RiskVerdict, command string) (approved, prompted bool) {
	if req.NoExec {
		return false, false
	}
	if verdict.Safe() && (cfg.AutoConfirm || req.AssumeYes) {
		return true, false
	}
	if p.Prompter == nil || !p.Prompter.Enabled() {
		return false, false
	}
	approved, err := p.Prompter.Confirm(command, verdict)
	if err != nil {
		// A failed read is indistinguishable from silence: decline.
		p.Logger.Warn("confirmation read failed", map[string]interface{}{"error": err.Error()})
		return false, true
	}
	return approved, true
}

func (p *Pipeline) record(result domain.PipelineResult) {
	if p.Audit == nil {
		return
	}
	rec := domain.AuditRecord{
		ID:        result.Query.ID.String(),
		Timestamp: result.Query.Time,
		Query:     result.Query.Text,
		Command:   result.Command,
		Warned:    !result.Verdict.Safe(),
		Reasons:   result.Verdict.Reasons,
		Outcome:   result.Outcome,
	}
	if result.Execution != nil {
		rec.ExitCode = result.Execution.ExitCode
		rec.DurationMS = result.Execution.DurationMS
	}
	if err := p.Audit.Record(rec); err != nil {
		p.Logger.Warn("audit record failed", map[string]interface{}{"error": err.Error()})
	}
}
