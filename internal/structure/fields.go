package structure

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/felixgeelhaar/treecheck/internal/analysis"
)

// checkFields validates per-node field content: id, title, priority and,
// at leaf ranks, description.
func checkFields(f analysis.Forest, r Rules, issues *[]Issue) {
	seen := make(map[string]bool)

	walkPaths(f, func(n, _ *analysis.Node, _ int, path string) {
		if !n.HasID() {
			*issues = append(*issues, Issue{
				Kind:        KindError,
				Code:        CodeMissingID,
				Message:     fmt.Sprintf("Node at path %s has no id", path),
				Severity:    SeverityHigh,
				AutoFixable: true,
			})
		} else if seen[n.ID] {
			*issues = append(*issues, Issue{
				Kind:        KindError,
				Code:        CodeDuplicateID,
				Message:     fmt.Sprintf("Node id %q at path %s is already used by another node", n.ID, path),
				NodeID:      n.ID,
				Severity:    SeverityHigh,
				AutoFixable: true,
			})
		} else {
			seen[n.ID] = true
		}

		title := strings.TrimSpace(n.Title)
		switch length := utf8.RuneCountInString(title); {
		case title == "":
			*issues = append(*issues, Issue{
				Kind:     KindError,
				Code:     CodeMissingTitle,
				Message:  fmt.Sprintf("Node %s has no title", label(n, path)),
				NodeID:   n.ID,
				Severity: SeverityHigh,
			})
		case length > r.MaxTitleLength:
			*issues = append(*issues, Issue{
				Kind:     KindWarning,
				Code:     CodeLongTitle,
				Message:  fmt.Sprintf("Title of node %s is %d characters; keep it under %d", label(n, path), length, r.MaxTitleLength),
				NodeID:   n.ID,
				Severity: SeverityLow,
			})
		case length < r.MinTitleLength:
			*issues = append(*issues, Issue{
				Kind:     KindWarning,
				Code:     CodeShortTitle,
				Message:  fmt.Sprintf("Title of node %s is only %d characters; make it more descriptive", label(n, path), length),
				NodeID:   n.ID,
				Severity: SeverityLow,
			})
		}

		if !n.Priority.IsValid() {
			*issues = append(*issues, Issue{
				Kind:        KindError,
				Code:        CodeInvalidPriority,
				Message:     fmt.Sprintf("Node %s has invalid priority %q", label(n, path), string(n.Priority)),
				NodeID:      n.ID,
				Severity:    SeverityMedium,
				AutoFixable: true,
			})
		}

		if n.Type.IsLeafRank() && !n.HasDescription() {
			*issues = append(*issues, Issue{
				Kind:     KindWarning,
				Code:     CodeMissingDescription,
				Message:  fmt.Sprintf("%s node %s has no description", titleCase(string(n.Type)), label(n, path)),
				NodeID:   n.ID,
				Severity: SeverityLow,
			})
		}
	})
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
