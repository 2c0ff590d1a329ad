package recommendations

import (
	"fmt"
	"strings"
)

// Priority orders recommendations from most to least urgent.
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityMedium
	PriorityLow
)

var priorityNames = [...]string{"Critical", "High", "Medium", "Low"}

func (p Priority) String() string {
	if p < PriorityCritical || p > PriorityLow {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityNames[p]
}

// ParsePriority accepts the display names case-insensitively.
func ParsePriority(s string) (Priority, error) {
	for i, name := range priorityNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Priority(i), nil
		}
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

func (p Priority) MarshalText() ([]byte, error) {
	if p < PriorityCritical || p > PriorityLow {
		return nil, fmt.Errorf("invalid priority %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	parsed, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Recommendation is one prioritized piece of guidance.
type Recommendation struct {
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

// Rule is the content emitted when a threshold rule fires.
type Rule struct {
	Priority    Priority
	Title       string
	Description string
	Actions     []string
}

// CategoryInput is the minimal per-category score the engine needs.
type CategoryInput struct {
	Key         string
	Name        string
	Description string
	Average     float64
}

// Input is the scored assessment handed to the engine. Categories must be in
// catalog order and only contain answered categories.
type Input struct {
	Overall    float64
	Categories []CategoryInput
}

// Thresholds are strict upper bounds: a rule fires when score < threshold.
type Thresholds struct {
	Foundation float64
	Category   float64
}

// DefaultThresholds returns the standard rule thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Foundation: 2.0, Category: 3.0}
}
