package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/treecheck/internal/analysis"
	"github.com/felixgeelhaar/treecheck/internal/autofix"
	"github.com/felixgeelhaar/treecheck/internal/structure"
	"github.com/felixgeelhaar/treecheck/internal/telemetry"
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Repair auto-fixable issues in a tree",
	Long: dedent.Dedent(`
		Fix repairs the issues the validator marks as auto-fixable:

		  MISSING_ID, DUPLICATE_ID     new ids are generated
		  INVALID_NODE_TYPE            the type is derived from the parent
		  INVALID_HIERARCHY            the child is moved one rank below its parent
		  INVALID_PRIORITY             the priority becomes medium
		  NEGATIVE_ESTIMATE            the estimate becomes 0
		  INVALID_DEPENDENCY           dangling dependencies are dropped

		Circular dependencies are never fixed. The repaired tree is written
		back to --in unless --out is given; --dry-run only reports.`),
	Example: dedent.Dedent(`
		  treecheck fix --in plan.yaml --dry-run
		  treecheck fix --in plan.yaml --out plan.fixed.yaml --only MISSING_ID,INVALID_PRIORITY`),
	Args: cobra.NoArgs,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().String("in", "", "tree file (JSON or YAML); discovered in the working directory if omitted")
	fixCmd.Flags().String("out", "", "where to write the repaired tree (default: overwrite --in)")
	fixCmd.Flags().Bool("dry-run", false, "report fixes without writing")
	fixCmd.Flags().StringSlice("only", nil, "only apply fixes for these issue codes")

	rootCmd.AddCommand(fixCmd)
}

// FixReport is what the fix command prints.
type FixReport struct {
	Source      string            `json:"source" yaml:"source"`
	Output      string            `json:"output,omitempty" yaml:"output,omitempty"`
	DryRun      bool              `json:"dryRun" yaml:"dryRun"`
	Fixes       []autofix.Fix     `json:"fixes" yaml:"fixes"`
	ScoreBefore int               `json:"scoreBefore" yaml:"scoreBefore"`
	ScoreAfter  int               `json:"scoreAfter" yaml:"scoreAfter"`
	Remaining   []structure.Issue `json:"remaining" yaml:"remaining"`
}

func (r FixReport) String() string {
	var b strings.Builder

	switch {
	case len(r.Fixes) == 0:
		fmt.Fprintf(&b, "No fixes needed for %s\n", r.Source)
	case r.DryRun:
		fmt.Fprintf(&b, "Would apply %d fix(es) to %s\n", len(r.Fixes), r.Source)
	default:
		fmt.Fprintf(&b, "Applied %d fix(es), wrote %s\n", len(r.Fixes), r.Output)
	}

	for _, f := range r.Fixes {
		id := f.NodeID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(&b, "  • %s %s: %s\n", f.Code, id, f.Detail)
	}

	fmt.Fprintf(&b, "score %d -> %d", r.ScoreBefore, r.ScoreAfter)
	if len(r.Remaining) > 0 {
		fmt.Fprintf(&b, "\n%d error(s) need manual attention:", len(r.Remaining))
		for _, issue := range r.Remaining {
			fmt.Fprintf(&b, "\n  • %s %s", issue.Code, issue.Message)
		}
	}
	return b.String()
}

func runFix(cmd *cobra.Command, _ []string) error {
	rs := current()
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	only, _ := cmd.Flags().GetStringSlice("only")

	_, span := telemetry.StartCommandSpan(cmd.Context(), "fix")
	defer span.End()

	codes, err := parseFixCodes(only)
	if err != nil {
		return err
	}

	path, doc, err := loadTree(in)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if out == "" {
		out = path
	}

	validator := structure.New(structure.WithRules(rs.cfg.Rules))

	fixed, fixes, err := autofix.Apply(doc.Nodes, autofix.Options{Only: codes})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	for _, f := range fixes {
		rs.metrics.RecordFix(f.Code)
	}

	before := validator.Validate(doc.Nodes)
	after := validator.Validate(fixed)

	report := FixReport{
		Source:      path,
		DryRun:      dryRun,
		Fixes:       fixes,
		ScoreBefore: before.Score,
		ScoreAfter:  after.Score,
		Remaining:   after.Errors(),
	}

	if !dryRun && len(fixes) > 0 {
		if err := analysis.SaveDocument(&analysis.Document{Name: doc.Name, Nodes: fixed}, out); err != nil {
			telemetry.RecordError(span, err)
			return err
		}
		report.Output = out
	}

	rs.logger.InfoContext(cmd.Context(), "fixes applied",
		"fixes", len(fixes),
		"dry_run", dryRun,
		"score_before", before.Score,
		"score_after", after.Score,
	)

	formatter, err := newFormatter(rs.cc, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	telemetry.RecordSuccess(span, telemetry.ResultAttributes(after)...)
	return formatter.Format(report)
}

func parseFixCodes(values []string) ([]structure.Code, error) {
	codes := make([]structure.Code, 0, len(values))
	for _, v := range values {
		code := structure.Code(strings.ToUpper(strings.TrimSpace(v)))
		if !slices.Contains(autofix.Fixable, code) {
			return nil, fmt.Errorf("invalid argument %q for --only: not an auto-fixable code", v)
		}
		codes = append(codes, code)
	}
	return codes, nil
}
