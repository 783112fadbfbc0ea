// Package security implements the tiered risk classifier over candidate
// commands.
package security

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/jswirl/ollash/internal/domain"
	"github.com/jswirl/ollash/internal/ports"
)

// Classifier evaluates candidate commands against an ordered rule table.
type Classifier struct {
	rules []compiledRule
}

type compiledRule struct {
	re   *regexp.Regexp
	rule domain.Rule
}

// rulesFile is the YAML schema of a rule table override.
type rulesFile struct {
	Rules []domain.Rule `yaml:"rules"`
}

// NewClassifier loads the rule table. A missing path selects the embedded
// defaults; an unreadable or invalid override falls back to the defaults
// with a warning, so classification is always available.
func NewClassifier(path string, log ports.Logger) *Classifier {
	if path == "" {
		return mustFromRules(defaultRules())
	}
	c, err := loadOverride(path)
	if err != nil {
		if log != nil {
			log.Warn("rules override rejected, using embedded table", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
		return mustFromRules(defaultRules())
	}
	return c
}

// FromRules compiles an explicit rule table.
func FromRules(rules []domain.Rule) (*Classifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		if rule.MinLevel.Rank() == 0 {
			return nil, fmt.Errorf("rule %q: invalid min_level %q", rule.Pattern, rule.MinLevel)
		}
		if rule.Reason == "" {
			return nil, fmt.Errorf("rule %q: missing reason", rule.Pattern)
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule.Pattern, err)
		}
		compiled = append(compiled, compiledRule{re: re, rule: rule})
	}
	return &Classifier{rules: compiled}, nil
}

// Classify evaluates every applicable rule and collects all matched
// reasons in table order. It never short-circuits: downstream display
// lists every concern. An unmatched command is simply safe.
func (c *Classifier) Classify(command string, level domain.SafetyLevel) domain.RiskVerdict {
	var verdict domain.RiskVerdict
	for _, entry := range c.rules {
		if !level.Activates(entry.rule.MinLevel) {
			continue
		}
		if entry.re.MatchString(command) {
			verdict.Reasons = append(verdict.Reasons, entry.rule.Reason)
		}
	}
	return verdict
}

// Rules exposes the active table for diagnostics.
func (c *Classifier) Rules() []domain.Rule {
	out := make([]domain.Rule, len(c.rules))
	for i, entry := range c.rules {
		out[i] = entry.rule
	}
	return out
}

func loadOverride(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("no rules defined")
	}
	return FromRules(file.Rules)
}

func mustFromRules(rules []domain.Rule) *Classifier {
	c, err := FromRules(rules)
	if err != nil {
		// The embedded table is validated by tests; reaching this is a bug.
		panic(err)
	}
	return c
}

var _ ports.Classifier = (*Classifier)(nil)
