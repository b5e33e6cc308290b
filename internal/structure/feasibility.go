package structure

import (
	"fmt"

	"github.com/felixgeelhaar/treecheck/internal/analysis"
)

// leafHours sums estimates over leaf nodes only, so parent roll-ups are not
// counted twice.
func leafHours(f analysis.Forest) float64 {
	total := 0.0
	walkPaths(f, func(n, _ *analysis.Node, _ int, _ string) {
		if n.IsLeaf() {
			total += n.Estimate()
		}
	})
	return total
}

// checkFeasibility flags oversized projects and parents whose own estimate
// is inconsistent with their decomposition. It returns the total leaf hours.
func checkFeasibility(f analysis.Forest, r Rules, issues *[]Issue) float64 {
	total := leafHours(f)
	if total > r.ProjectHoursBudget {
		*issues = append(*issues, Issue{
			Kind:     KindWarning,
			Code:     CodeLargeProject,
			Message:  fmt.Sprintf("Project totals %g hours, about %.2f person-years", total, total/r.ProjectHoursBudget),
			Severity: SeverityHigh,
		})
	}

	walkPaths(f, func(n, _ *analysis.Node, _ int, path string) {
		own := n.Estimate()
		if n.IsLeaf() || own <= 0 {
			return
		}
		children := 0.0
		for _, child := range n.Children {
			children += child.Estimate()
		}
		if children > r.BreakdownFactor*own {
			*issues = append(*issues, Issue{
				Kind:     KindWarning,
				Code:     CodeUnrealisticBreakdown,
				Message:  fmt.Sprintf("Children of node %s add up to %g hours, more than %gx its own estimate of %g", label(n, path), children, r.BreakdownFactor, own),
				NodeID:   n.ID,
				Severity: SeverityMedium,
			})
		}
	})
	return total
}
