// Package autofix repairs the issues the structure engine marks as
// auto-fixable. Fixes are applied to a copy; the input forest is never
// modified.
package autofix

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/treecheck/internal/analysis"
	"github.com/felixgeelhaar/treecheck/internal/domain"
	"github.com/felixgeelhaar/treecheck/internal/errors"
	"github.com/felixgeelhaar/treecheck/internal/structure"
)

// Fix describes one change made to the tree.
type Fix struct {
	Code   structure.Code `json:"code" yaml:"code"`
	NodeID string         `json:"nodeId" yaml:"nodeId"`
	Detail string         `json:"detail" yaml:"detail"`
}

// Options controls which fixes are applied and how ids are minted.
type Options struct {
	// NewID mints ids for nodes without one or with a duplicate.
	// Defaults to random UUIDs.
	NewID func() string

	// Only restricts fixing to the listed codes. Empty means all.
	Only []structure.Code
}

func (o Options) enabled(code structure.Code) bool {
	return len(o.Only) == 0 || slices.Contains(o.Only, code)
}

// Fixable lists the codes Apply can repair, in the order it repairs them.
var Fixable = []structure.Code{
	structure.CodeMissingID,
	structure.CodeDuplicateID,
	structure.CodeInvalidNodeType,
	structure.CodeInvalidHierarchy,
	structure.CodeInvalidPriority,
	structure.CodeNegativeEstimate,
	structure.CodeInvalidDependency,
}

// Apply returns a repaired copy of f and the fixes made. Circular
// dependencies are never touched: which edge to cut is a planning decision.
// A subtask nested under a subtask cannot be repaired by retyping and is
// left for a human.
func Apply(f analysis.Forest, opts Options) (analysis.Forest, []Fix, error) {
	if err := structure.CheckShape(f); err != nil {
		return nil, nil, errors.NewTreeMalformedError(err)
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	out := f.Clone()
	fx := &fixer{opts: opts, fixes: make([]Fix, 0)}

	fx.fixIDs(out)
	for _, root := range out {
		fx.fixRanks(root, -1)
	}
	fx.fixFields(out)
	fx.fixDependencies(out)

	return out, fx.fixes, nil
}

type fixer struct {
	opts  Options
	fixes []Fix
}

func (fx *fixer) record(code structure.Code, id, format string, args ...any) {
	fx.fixes = append(fx.fixes, Fix{Code: code, NodeID: id, Detail: fmt.Sprintf(format, args...)})
}

// fixIDs mints ids for blank and repeated ids. The first node in pre-order
// keeps a repeated id, so dependencies on it keep resolving the same way.
func (fx *fixer) fixIDs(f analysis.Forest) {
	// Dangling dependency targets are reserved too, so a minted id never
	// silently resolves one.
	taken := make(map[string]bool)
	analysis.Walk(f, func(n, _ *analysis.Node, _ int) bool {
		if n.HasID() {
			taken[n.ID] = true
		}
		for _, dep := range n.Dependencies {
			taken[dep] = true
		}
		return true
	})

	mint := func() string {
		for {
			id := fx.opts.NewID()
			if !taken[id] {
				taken[id] = true
				return id
			}
		}
	}

	kept := make(map[string]bool)
	analysis.Walk(f, func(n, _ *analysis.Node, _ int) bool {
		switch {
		case !n.HasID():
			if fx.opts.enabled(structure.CodeMissingID) {
				n.ID = mint()
				fx.record(structure.CodeMissingID, n.ID, "assigned id %q", n.ID)
			}
		case kept[n.ID]:
			if fx.opts.enabled(structure.CodeDuplicateID) {
				old := n.ID
				n.ID = mint()
				fx.record(structure.CodeDuplicateID, n.ID, "renamed duplicate id %q to %q", old, n.ID)
			}
		default:
			kept[n.ID] = true
		}
		return true
	})
}

// fixRanks walks top-down so every child is compared with its parent's
// repaired type. parentRank is -1 for roots.
func (fx *fixer) fixRanks(n *analysis.Node, parentRank int) {
	last := len(domain.NodeTypes) - 1
	want := min(parentRank+1, last)

	switch rank := n.Type.Rank(); {
	case rank < 0:
		if fx.opts.enabled(structure.CodeInvalidNodeType) {
			old := n.Type
			n.Type = domain.NodeTypes[want]
			fx.record(structure.CodeInvalidNodeType, n.ID, "changed unknown type %q to %q", string(old), string(n.Type))
		}
	case parentRank >= 0 && rank <= parentRank && parentRank < last:
		if fx.opts.enabled(structure.CodeInvalidHierarchy) {
			old := n.Type
			n.Type = domain.NodeTypes[want]
			fx.record(structure.CodeInvalidHierarchy, n.ID, "changed type %q to %q to sit below its parent", string(old), string(n.Type))
		}
	}

	for _, child := range n.Children {
		fx.fixRanks(child, n.Type.Rank())
	}
}

func (fx *fixer) fixFields(f analysis.Forest) {
	analysis.Walk(f, func(n, _ *analysis.Node, _ int) bool {
		if !n.Priority.IsValid() && fx.opts.enabled(structure.CodeInvalidPriority) {
			old := n.Priority
			n.Priority = domain.DefaultPriority
			fx.record(structure.CodeInvalidPriority, n.ID, "changed priority %q to %q", string(old), string(n.Priority))
		}
		if n.EstimatedHours != nil && *n.EstimatedHours < 0 && fx.opts.enabled(structure.CodeNegativeEstimate) {
			old := *n.EstimatedHours
			n.EstimatedHours = analysis.Hours(0)
			fx.record(structure.CodeNegativeEstimate, n.ID, "changed estimate %g to 0", old)
		}
		return true
	})
}

func (fx *fixer) fixDependencies(f analysis.Forest) {
	if !fx.opts.enabled(structure.CodeInvalidDependency) {
		return
	}

	ids := make(map[string]bool)
	analysis.Walk(f, func(n, _ *analysis.Node, _ int) bool {
		if n.HasID() {
			ids[n.ID] = true
		}
		return true
	})

	analysis.Walk(f, func(n, _ *analysis.Node, _ int) bool {
		if len(n.Dependencies) == 0 {
			return true
		}
		kept := n.Dependencies[:0]
		for _, dep := range n.Dependencies {
			if ids[dep] {
				kept = append(kept, dep)
				continue
			}
			fx.record(structure.CodeInvalidDependency, n.ID, "removed dependency on missing node %q", dep)
		}
		if len(kept) == 0 {
			kept = nil
		}
		n.Dependencies = kept
		return true
	})
}
