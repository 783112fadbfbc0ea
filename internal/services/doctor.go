package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jswirl/ollash/internal/domain"
	"github.com/jswirl/ollash/internal/ports"
)

// Doctor runs environment diagnostics.
type Doctor struct {
	Config     ports.ConfigStore
	Model      ports.ModelClient
	Classifier ports.Classifier
	History    ports.HistoryStore
}

// Run executes checks and returns a report. Individual failures degrade
// to warn/error entries; the report itself always comes back.
func (d *Doctor) Run(ctx context.Context) domain.HealthReport {
	var checks []domain.HealthCheck

	cfg, err := d.Config.Load(ctx)
	if err != nil {
		checks = append(checks, fail("config", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}
	}
	checks = append(checks, ok("config", fmt.Sprintf("model=%s safety=%s", cfg.GetModel(), cfg.GetSafetyLevel())))

	if d.Classifier != nil {
		rules := d.Classifier.Rules()
		if len(rules) == 0 {
			checks = append(checks, fail("risk rules", "empty rule table"))
		} else if v := d.Classifier.Classify("rm -rf /", domain.SafetyLow); v.Safe() {
			checks = append(checks, warn("risk rules", "table does not flag root deletion at low"))
		} else {
			checks = append(checks, ok("risk rules", fmt.Sprintf("%d rules loaded", len(rules))))
		}
	}

	if d.History != nil {
		if _, err := d.History.Recent(1); err != nil {
			checks = append(checks, warn("history", err.Error()))
		} else {
			checks = append(checks, ok("history", "store readable"))
		}
	}

	if d.Model == nil {
		checks = append(checks, fail("backend", "model client not initialized"))
		return domain.HealthReport{Checks: checks}
	}
	if !d.Model.IsReachable(ctx) {
		checks = append(checks, fail("backend", fmt.Sprintf("no response from %s", cfg.GetURL())))
		return domain.HealthReport{Checks: checks}
	}
	checks = append(checks, ok("backend", cfg.GetURL()))

	names, err := d.Model.ListModels(ctx)
	switch {
	case err != nil:
		checks = append(checks, warn("models", err.Error()))
	case !containsModel(names, cfg.GetModel()):
		checks = append(checks, warn("models", fmt.Sprintf("configured model %q not installed (have: %s)", cfg.GetModel(), strings.Join(names, ", "))))
	default:
		checks = append(checks, ok("models", fmt.Sprintf("%q installed", cfg.GetModel())))
	}

	return domain.HealthReport{Checks: checks}
}

func containsModel(names []string, want string) bool {
	for _, name := range names {
		if name == want || strings.SplitN(name, ":", 2)[0] == want {
			return true
		}
	}
	return false
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
