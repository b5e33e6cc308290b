package structure

import "fmt"

// suggest derives advisory text from issue counts and metrics. It depends
// only on counts, never on issue order.
func suggest(issues []Issue, m Metrics) []string {
	var out []string

	if errors := countKind(issues, KindError); errors > 0 {
		out = append(out, fmt.Sprintf("Fix %d critical error(s) before proceeding", errors))
	}
	if warnings := countKind(issues, KindWarning); warnings > suggestWarningCount {
		out = append(out, fmt.Sprintf("Consider addressing the %d warnings to improve structure quality", warnings))
	}
	if m.Depth > suggestMaxDepth {
		out = append(out, fmt.Sprintf("Consider flattening the hierarchy; a depth of %d is hard to navigate", m.Depth))
	}
	if m.Breadth > suggestMaxBreadth {
		out = append(out, fmt.Sprintf("Consider grouping related items; one level has %d siblings", m.Breadth))
	}
	if m.Completeness < suggestCompleteness {
		out = append(out, "Add time estimates and descriptions to more nodes to improve completeness")
	}
	if m.Feasibility < suggestFeasibility {
		out = append(out, "Consider splitting the project into phases or reducing its scope")
	}

	if len(out) == 0 {
		out = append(out, "Structure looks good; review the estimates with the team before committing")
	}
	return out
}
