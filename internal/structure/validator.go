// Package structure is the structural quality engine for analysis trees.
//
// Validate walks a forest with six independent rule passes (hierarchy,
// node fields, dependencies, estimates, completeness, feasibility), derives
// shape metrics, fuses both into a 0-100 score and synthesizes improvement
// suggestions. The engine is pure: it performs no I/O, keeps no state between
// calls and is safe for concurrent use.
package structure

import (
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/treecheck/internal/analysis"
)

// Validator runs the rule passes with a fixed set of thresholds.
type Validator struct {
	rules Rules
}

// Option configures a Validator.
type Option func(*Validator)

// WithRules replaces the default thresholds.
func WithRules(r Rules) Option {
	return func(v *Validator) {
		v.rules = r
	}
}

// New creates a Validator. Without options it uses DefaultRules.
func New(opts ...Option) *Validator {
	v := &Validator{rules: DefaultRules()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Rules returns the thresholds in use.
func (v *Validator) Rules() Rules {
	return v.rules
}

var defaultValidator = New()

// Validate checks a forest with the default rules.
func Validate(f analysis.Forest) Result {
	return defaultValidator.Validate(f)
}

// Validate checks a forest. It never fails: if the engine cannot run, the
// result is the degraded form described by Failed.
func (v *Validator) Validate(f analysis.Forest) Result {
	result, _ := v.Run(f)
	return result
}

// Run is Validate that also reports why the engine could not run. When the
// error is non-nil the returned result is Failed().
func (v *Validator) Run(f analysis.Forest) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validation aborted: %v", r)
			result = Failed()
		}
	}()

	if shapeErr := CheckShape(f); shapeErr != nil {
		return Failed(), shapeErr
	}

	issues := make([]Issue, 0)
	idx := newIndex(f)

	checkHierarchy(f, v.rules, &issues)
	checkFields(f, v.rules, &issues)
	checkDependencies(f, idx, &issues)
	checkEstimates(f, v.rules, &issues)
	counts := checkCompleteness(f, v.rules, &issues)
	totalHours := checkFeasibility(f, v.rules, &issues)

	metrics := computeMetrics(f, counts, totalHours, v.rules)
	score := computeScore(issues, metrics)

	return Result{
		IsValid:     countKind(issues, KindError) == 0,
		Issues:      issues,
		Suggestions: suggest(issues, metrics),
		Score:       score,
		Metrics:     metrics,
	}, nil
}

// Failed returns the degraded result used when validation cannot run.
func Failed() Result {
	return Result{
		IsValid: false,
		Issues: []Issue{{
			Kind:     KindError,
			Code:     CodeValidationError,
			Message:  "Validation could not be completed because the tree could not be traversed",
			Severity: SeverityHigh,
		}},
		Suggestions: []string{"Check the tree structure and try validating again"},
		Score:       0,
		Metrics:     Metrics{},
	}
}

// CheckShape rejects inputs the passes cannot traverse: nil nodes and node
// pointers that occur more than once, which would make the walk revisit or
// never terminate.
func CheckShape(f analysis.Forest) error {
	seen := make(map[*analysis.Node]bool)

	var visit func(n *analysis.Node, path string) error
	visit = func(n *analysis.Node, path string) error {
		if n == nil {
			return fmt.Errorf("nil node at path %s", path)
		}
		if seen[n] {
			return fmt.Errorf("node at path %s appears more than once in the tree", path)
		}
		seen[n] = true
		for i, child := range n.Children {
			if err := visit(child, path+"."+strconv.Itoa(i)); err != nil {
				return err
			}
		}
		return nil
	}

	for i, root := range f {
		if err := visit(root, strconv.Itoa(i)); err != nil {
			return err
		}
	}
	return nil
}

func countKind(issues []Issue, kind Kind) int {
	n := 0
	for _, issue := range issues {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}

// label names a node in messages: its id, or its ordinal path when the id is blank.
func label(n *analysis.Node, path string) string {
	if n.HasID() {
		return strconv.Quote(n.ID)
	}
	return "at path " + path
}
