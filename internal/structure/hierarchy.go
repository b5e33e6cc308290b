package structure

import (
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/treecheck/internal/analysis"
)

// checkHierarchy validates rank order and tree shape in pre-order.
func checkHierarchy(f analysis.Forest, r Rules, issues *[]Issue) {
	for i, root := range f {
		checkHierarchyNode(root, 0, strconv.Itoa(i), r, issues)
	}
}

func checkHierarchyNode(n *analysis.Node, depth int, path string, r Rules, issues *[]Issue) {
	if depth > r.MaxDepth {
		*issues = append(*issues, Issue{
			Kind:     KindWarning,
			Code:     CodeExcessiveDepth,
			Message:  fmt.Sprintf("Node %s is at depth %d, deeper than the recommended maximum of %d", label(n, path), depth, r.MaxDepth),
			NodeID:   n.ID,
			Severity: SeverityMedium,
		})
	}

	rank := n.Type.Rank()
	if rank < 0 {
		*issues = append(*issues, Issue{
			Kind:        KindError,
			Code:        CodeInvalidNodeType,
			Message:     fmt.Sprintf("Node %s has unknown type %q", label(n, path), string(n.Type)),
			NodeID:      n.ID,
			Severity:    SeverityHigh,
			AutoFixable: true,
		})
	} else {
		for i, child := range n.Children {
			childRank := child.Type.Rank()
			if childRank < 0 || childRank > rank {
				continue
			}
			*issues = append(*issues, Issue{
				Kind:    KindError,
				Code:    CodeInvalidHierarchy,
				Message: fmt.Sprintf("Node %s of type %q cannot be placed under a %q node",
					label(child, path+"."+strconv.Itoa(i)), string(child.Type), string(n.Type)),
				NodeID:      child.ID,
				Severity:    SeverityHigh,
				AutoFixable: true,
			})
		}
	}

	if len(n.Children) > r.MaxChildren {
		*issues = append(*issues, Issue{
			Kind:     KindWarning,
			Code:     CodeTooManyChildren,
			Message:  fmt.Sprintf("Node %s has %d children; more than %d is hard to reason about", label(n, path), len(n.Children), r.MaxChildren),
			NodeID:   n.ID,
			Severity: SeverityMedium,
		})
	}

	for i, child := range n.Children {
		checkHierarchyNode(child, depth+1, path+"."+strconv.Itoa(i), r, issues)
	}
}
