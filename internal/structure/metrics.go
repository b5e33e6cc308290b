package structure

import (
	"math"

	"github.com/felixgeelhaar/treecheck/internal/analysis"
)

func computeMetrics(f analysis.Forest, c coverage, totalHours float64, r Rules) Metrics {
	depth, breadth := 0, len(f)
	walkPaths(f, func(n, _ *analysis.Node, d int, _ string) {
		if d > depth {
			depth = d
		}
		if len(n.Children) > breadth {
			breadth = len(n.Children)
		}
	})

	m := Metrics{
		Depth:       depth,
		Breadth:     breadth,
		Complexity:  min(100, depth*10+breadth*5),
		Feasibility: defaultFeasibility,
	}

	if c.total > 0 {
		m.Completeness = roundHalfUp(100 * float64(c.withEstimate+c.withDescription) / float64(2*c.total))
	}
	if totalHours > 0 && totalHours < r.ProjectHoursBudget {
		m.Feasibility = roundHalfUp(math.Min(100, 100-totalHours/hoursPerFeasibilityPoint))
	}
	return m
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
