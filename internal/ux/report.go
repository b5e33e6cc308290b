package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/treecheck/internal/structure"
)

// Report is what the validate command prints. JSON and YAML output use the
// same shape, so scripts see the full result.
type Report struct {
	Source      string           `json:"source,omitempty" yaml:"source,omitempty"`
	Fingerprint string           `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Passed      bool             `json:"passed" yaml:"passed"`
	Result      structure.Result `json:"result" yaml:"result"`
}

// Styles holds the lipgloss styles of the text report.
type Styles struct {
	Title   lipgloss.Style
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Code    lipgloss.Style
	Muted   lipgloss.Style
	Header  lipgloss.Style
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		Pass: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Fail: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")), // Yellow
		Code: lipgloss.NewStyle().
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
	}
}

// PlainStyles renders text without any escape sequences.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title: plain, Pass: plain, Fail: plain, Error: plain,
		Warning: plain, Code: plain, Muted: plain, Header: plain,
	}
}

// StylesFor picks plain or colored styles.
func StylesFor(noColor bool) Styles {
	if noColor {
		return PlainStyles()
	}
	return DefaultStyles()
}

// RenderReport writes a human-readable report.
func RenderReport(w io.Writer, r Report, s Styles) error {
	var b strings.Builder

	title := "treecheck"
	if r.Source != "" {
		title += ": " + r.Source
	}
	b.WriteString(s.Title.Render(title) + "\n")

	status := s.Pass.Render("PASS")
	if !r.Passed {
		status = s.Fail.Render("FAIL")
	}
	validity := "valid"
	if !r.Result.IsValid {
		validity = "invalid"
	}
	fmt.Fprintf(&b, "%s  score %d/100, %s\n", status, r.Result.Score, validity)

	m := r.Result.Metrics
	b.WriteString(s.Muted.Render(fmt.Sprintf(
		"depth %d | breadth %d | complexity %d | completeness %d | feasibility %d",
		m.Depth, m.Breadth, m.Complexity, m.Completeness, m.Feasibility)) + "\n")

	writeIssues(&b, "Errors", r.Result.Errors(), s.Error, s)
	writeIssues(&b, "Warnings", r.Result.Warnings(), s.Warning, s)

	if len(r.Result.Suggestions) > 0 {
		b.WriteString("\n" + s.Header.Render("Suggestions") + "\n")
		for _, suggestion := range r.Result.Suggestions {
			fmt.Fprintf(&b, "  • %s\n", suggestion)
		}
	}

	if r.Fingerprint != "" {
		b.WriteString("\n" + s.Muted.Render("fingerprint "+r.Fingerprint) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeIssues(b *strings.Builder, heading string, issues []structure.Issue, marker lipgloss.Style, s Styles) {
	if len(issues) == 0 {
		return
	}

	fmt.Fprintf(b, "\n%s\n", s.Header.Render(fmt.Sprintf("%s (%d)", heading, len(issues))))
	for _, issue := range issues {
		line := fmt.Sprintf("  %s %s [%s] %s",
			marker.Render("•"), s.Code.Render(string(issue.Code)), issue.Severity, issue.Message)
		if issue.AutoFixable {
			line += s.Muted.Render(" (fixable)")
		}
		b.WriteString(line + "\n")
	}
}
