package app

import (
	"context"

	"github.com/jswirl/ollash/internal/infrastructure/config"
	"github.com/jswirl/ollash/internal/infrastructure/contextinfo"
	"github.com/jswirl/ollash/internal/infrastructure/executor"
	"github.com/jswirl/ollash/internal/infrastructure/history"
	"github.com/jswirl/ollash/internal/infrastructure/ollama"
	"github.com/jswirl/ollash/internal/infrastructure/security"
	"github.com/jswirl/ollash/internal/pkg/logger"
	"github.com/jswirl/ollash/internal/ports"
	"github.com/jswirl/ollash/internal/services"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Pipeline   *services.Pipeline
	Tasks      *services.TaskRunner
	Doctor     *services.Doctor
	Config     ports.ConfigStore
	Model      ports.ModelClient
	Classifier ports.Classifier
	History    ports.HistoryStore
	Audit      ports.AuditLog
	Logger     ports.Logger
}

// BuildContainer constructs the dependency graph. The prompter and
// clipboard are CLI concerns and get attached by the command layer.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgStore := config.NewFileStore("")
	cfg, err := cfgStore.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(verbose || cfg.Verbose)
	historyStore := history.NewFileStore(history.DefaultPath(), cfg.GetMaxHistory())
	auditStore := history.NewAuditStore(history.DefaultAuditPath())
	classifier := security.NewClassifier(cfg.RulesFile, log)
	collector := contextinfo.New(historyStore)
	model := ollama.New(cfg.GetURL(), log)
	exec := executor.New(cfg.GetShell())

	pipeline := &services.Pipeline{
		Config:     cfgStore,
		Context:    collector,
		Model:      model,
		Classifier: classifier,
		History:    historyStore,
		Audit:      auditStore,
		Executor:   exec,
		Logger:     log,
	}

	tasks := &services.TaskRunner{
		Config: cfgStore,
		Model:  model,
		Audit:  auditStore,
		Logger: log,
	}

	doctor := &services.Doctor{
		Config:     cfgStore,
		Model:      model,
		Classifier: classifier,
		History:    historyStore,
	}

	return &Container{
		Pipeline:   pipeline,
		Tasks:      tasks,
		Doctor:     doctor,
		Config:     cfgStore,
		Model:      model,
		Classifier: classifier,
		History:    historyStore,
		Audit:      auditStore,
		Logger:     log,
	}, nil
}
