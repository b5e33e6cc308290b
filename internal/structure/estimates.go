package structure

import (
	"fmt"

	"github.com/felixgeelhaar/treecheck/internal/analysis"
)

// checkEstimates sanity-checks estimatedHours on every node and requires
// estimates on task and subtask nodes.
func checkEstimates(f analysis.Forest, r Rules, issues *[]Issue) {
	walkPaths(f, func(n, _ *analysis.Node, _ int, path string) {
		if n.EstimatedHours == nil {
			if n.Type.IsLeafRank() {
				*issues = append(*issues, Issue{
					Kind:     KindWarning,
					Code:     CodeMissingEstimate,
					Message:  fmt.Sprintf("%s node %s has no time estimate", titleCase(string(n.Type)), label(n, path)),
					NodeID:   n.ID,
					Severity: SeverityLow,
				})
			}
			return
		}

		hours := *n.EstimatedHours
		if hours < 0 {
			*issues = append(*issues, Issue{
				Kind:        KindError,
				Code:        CodeNegativeEstimate,
				Message:     fmt.Sprintf("Node %s has a negative estimate of %g hours", label(n, path), hours),
				NodeID:      n.ID,
				Severity:    SeverityHigh,
				AutoFixable: true,
			})
		}
		if hours > r.LargeEstimateHours {
			*issues = append(*issues, Issue{
				Kind:     KindWarning,
				Code:     CodeLargeEstimate,
				Message:  fmt.Sprintf("Node %s is estimated at %g hours, above %g", label(n, path), hours, r.LargeEstimateHours),
				NodeID:   n.ID,
				Severity: SeverityMedium,
			})
		}

		if !n.IsLeaf() || !n.Type.IsLeafRank() {
			return
		}
		if hours == 0 {
			*issues = append(*issues, Issue{
				Kind:     KindWarning,
				Code:     CodeZeroEstimate,
				Message:  fmt.Sprintf("%s %s is estimated at zero hours", titleCase(string(n.Type)), label(n, path)),
				NodeID:   n.ID,
				Severity: SeverityLow,
			})
		}
		if hours > r.LongTaskHours {
			*issues = append(*issues, Issue{
				Kind:     KindWarning,
				Code:     CodeLongTask,
				Message:  fmt.Sprintf("%s %s takes %g hours; consider breaking it into pieces under %g hours", titleCase(string(n.Type)), label(n, path), hours, r.LongTaskHours),
				NodeID:   n.ID,
				Severity: SeverityMedium,
			})
		}
	})
}
