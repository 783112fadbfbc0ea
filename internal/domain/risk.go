package domain

import "fmt"

// SafetyLevel controls how aggressively commands are flagged. Levels are
// strictly ordered: every rule active at a lower level stays active at
// every higher level.
type SafetyLevel string

const (
	SafetyLow    SafetyLevel = "low"
	SafetyMedium SafetyLevel = "medium"
	SafetyHigh   SafetyLevel = "high"
)

// ParseSafetyLevel validates a user-supplied level string.
func ParseSafetyLevel(value string) (SafetyLevel, error) {
	switch SafetyLevel(value) {
	case SafetyLow, SafetyMedium, SafetyHigh:
		return SafetyLevel(value), nil
	default:
		return "", fmt.Errorf("invalid safety level %q (want low, medium or high)", value)
	}
}

// Rank maps levels onto their strictness ordering. Unknown levels rank
// below low so a corrupted config never widens the active rule set.
func (l SafetyLevel) Rank() int {
	switch l {
	case SafetyLow:
		return 1
	case SafetyMedium:
		return 2
	case SafetyHigh:
		return 3
	default:
		return 0
	}
}

// Activates reports whether a rule with the given minimum level applies
// when l is the configured safety level.
func (l SafetyLevel) Activates(min SafetyLevel) bool {
	return min.Rank() <= l.Rank() && min.Rank() > 0
}

// Rule is one entry of the ordered risk table. MinLevel is the lowest
// safety level at which the rule applies; the nesting invariant between
// levels falls out of this representation.
type Rule struct {
	Pattern  string      `yaml:"pattern"`
	MinLevel SafetyLevel `yaml:"min_level"`
	Reason   string      `yaml:"reason"`
}

// RiskVerdict is the advisory output of classification. An empty reason
// list means no applicable rule matched.
type RiskVerdict struct {
	Reasons []string
}

// Safe reports whether no applicable rule matched.
func (v RiskVerdict) Safe() bool {
	return len(v.Reasons) == 0
}
