// Package treecheck is the public API of the analysis tree validator.
//
// Usage:
//
//	forest := treecheck.Forest{{ID: "obj", Type: treecheck.Objective, Title: "Ship v2"}}
//	result := treecheck.Validate(forest)
//	if !result.IsValid {
//		for _, issue := range result.Errors() { ... }
//	}
//
// Validate is pure and safe for concurrent use.
package treecheck

import (
	"github.com/felixgeelhaar/treecheck/internal/analysis"
	"github.com/felixgeelhaar/treecheck/internal/autofix"
	"github.com/felixgeelhaar/treecheck/internal/domain"
	"github.com/felixgeelhaar/treecheck/internal/structure"
)

// Tree model
type (
	Node     = analysis.Node
	Forest   = analysis.Forest
	Document = analysis.Document
	NodeType = domain.NodeType
	Priority = domain.Priority
)

// Validation results
type (
	Result   = structure.Result
	Issue    = structure.Issue
	Metrics  = structure.Metrics
	Kind     = structure.Kind
	Severity = structure.Severity
	Code     = structure.Code
	Rules    = structure.Rules
	Fix      = autofix.Fix
)

const (
	Objective  = domain.NodeTypeObjective
	Strategy   = domain.NodeTypeStrategy
	Initiative = domain.NodeTypeInitiative
	Task       = domain.NodeTypeTask
	Subtask    = domain.NodeTypeSubtask
)

const (
	PriorityLow      = domain.PriorityLow
	PriorityMedium   = domain.PriorityMedium
	PriorityHigh     = domain.PriorityHigh
	PriorityCritical = domain.PriorityCritical
)

const (
	KindError      = structure.KindError
	KindWarning    = structure.KindWarning
	KindSuggestion = structure.KindSuggestion
)

// Validate checks f with the default rules. It never fails: a tree the
// engine cannot traverse yields a result with a single VALIDATION_ERROR.
func Validate(f Forest) Result {
	return structure.Validate(f)
}

// ValidateWithRules checks f with custom thresholds.
func ValidateWithRules(f Forest, rules Rules) Result {
	return structure.New(structure.WithRules(rules)).Validate(f)
}

// DefaultRules returns the built-in thresholds.
func DefaultRules() Rules {
	return structure.DefaultRules()
}

// Hours returns a pointer to h for Node.EstimatedHours.
func Hours(h float64) *float64 {
	return analysis.Hours(h)
}

// Load reads a JSON or YAML tree file.
func Load(path string) (*Document, error) {
	return analysis.LoadDocument(path)
}

// Fingerprint returns a stable digest of f. Identical trees have identical
// fingerprints.
func Fingerprint(f Forest) (string, error) {
	return analysis.Fingerprint(f)
}

// AutoFix returns a repaired copy of f and the fixes made. The input is
// never modified.
func AutoFix(f Forest) (Forest, []Fix, error) {
	return autofix.Apply(f, autofix.Options{})
}
