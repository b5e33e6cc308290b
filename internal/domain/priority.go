package domain

import "fmt"

// Priority represents the urgency of a node in an analysis tree.
// This is a value object that enforces valid priority values.
type Priority string

// Valid priority levels
const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// DefaultPriority is what an invalid priority is clamped to.
const DefaultPriority = PriorityMedium

// Priorities lists every valid priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// NewPriority creates a new Priority value object with validation
func NewPriority(value string) (Priority, error) {
	p := Priority(value)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate checks if the priority is valid
func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return nil
	default:
		return fmt.Errorf("invalid priority %q: must be low, medium, high, or critical", string(p))
	}
}

// IsValid reports whether the priority is one of the four known levels
func (p Priority) IsValid() bool {
	return p.Validate() == nil
}

// String returns the string representation
func (p Priority) String() string {
	return string(p)
}

// IsHigherThan checks if this priority is higher than another
func (p Priority) IsHigherThan(other Priority) bool {
	return priorityRank(p) > priorityRank(other)
}

// IsLowerThan checks if this priority is lower than another
func (p Priority) IsLowerThan(other Priority) bool {
	return priorityRank(p) < priorityRank(other)
}

// priorityRank returns the numeric rank of a priority (higher = more important)
func priorityRank(p Priority) int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}
