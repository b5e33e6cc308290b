package structure

// computeScore subtracts per-issue penalties from 100, then blends the
// result with completeness and feasibility and clamps it to [0, 100].
func computeScore(issues []Issue, m Metrics) int {
	score := 100
	for _, issue := range issues {
		score -= penalties[issue.Severity][issue.Kind]
	}

	blended := roundHalfUp(float64(score+m.Completeness+m.Feasibility) / 3)
	return max(0, min(100, blended))
}
