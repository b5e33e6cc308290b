package structure

import (
	"fmt"
	"math"

	"github.com/felixgeelhaar/treecheck/internal/analysis"
)

// coverage counts how much of the tree carries estimates and descriptions.
type coverage struct {
	total           int
	withEstimate    int
	withDescription int
}

func measureCoverage(f analysis.Forest) coverage {
	var c coverage
	walkPaths(f, func(n, _ *analysis.Node, _ int, _ string) {
		c.total++
		if n.Estimate() > 0 {
			c.withEstimate++
		}
		if n.HasDescription() {
			c.withDescription++
		}
	})
	return c
}

// checkCompleteness warns when too few nodes carry estimates or descriptions.
func checkCompleteness(f analysis.Forest, r Rules, issues *[]Issue) coverage {
	c := measureCoverage(f)
	if c.total == 0 {
		return c
	}

	estimates := float64(c.withEstimate) / float64(c.total)
	descriptions := float64(c.withDescription) / float64(c.total)

	if estimates < r.MinEstimateCoverage {
		*issues = append(*issues, Issue{
			Kind:     KindWarning,
			Code:     CodeIncompleteEstimates,
			Message:  fmt.Sprintf("Only %d%% of nodes have time estimates", int(math.Round(estimates*100))),
			Severity: SeverityMedium,
		})
	}
	if descriptions < r.MinDescriptionCoverage {
		*issues = append(*issues, Issue{
			Kind:     KindWarning,
			Code:     CodeIncompleteDescriptions,
			Message:  fmt.Sprintf("Only %d%% of nodes have descriptions", int(math.Round(descriptions*100))),
			Severity: SeverityLow,
		})
	}
	return c
}
