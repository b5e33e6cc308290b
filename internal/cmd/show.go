package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ddddddO/gtree"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/treecheck/internal/analysis"
	"github.com/felixgeelhaar/treecheck/internal/errors"
	"github.com/felixgeelhaar/treecheck/internal/structure"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a tree as an outline",
	Long: dedent.Dedent(`
		Show renders the forest as an ASCII tree, one line per node:

		  [type] title (id, estimate)

		Nodes with validation findings are marked with their error and
		warning counts. Use --no-issues to print the bare outline.`),
	Example: dedent.Dedent(`
		  treecheck show --in plan.yaml`),
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	showCmd.Flags().String("in", "", "tree file (JSON or YAML); discovered in the working directory if omitted")
	showCmd.Flags().Bool("no-issues", false, "do not annotate nodes with findings")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	rs := current()
	in, _ := cmd.Flags().GetString("in")
	noIssues, _ := cmd.Flags().GetBool("no-issues")

	path, doc, err := loadTree(in)
	if err != nil {
		return err
	}
	rs.logger.Debug("tree loaded", "path", path, "name", doc.Name, "roots", len(doc.Nodes))
	if err := structure.CheckShape(doc.Nodes); err != nil {
		return errors.NewTreeMalformedError(err)
	}

	var findings map[string]findingCount
	if !noIssues {
		findings = countFindings(structure.New(structure.WithRules(rs.cfg.Rules)).Validate(doc.Nodes))
	}

	root := gtree.NewRoot(oneLine(doc.Name))
	seen := map[string]int{}
	for _, n := range doc.Nodes {
		addOutline(root, n, findings, seen)
	}

	return gtree.OutputFromRoot(cmd.OutOrStdout(), root)
}

type findingCount struct {
	errors   int
	warnings int
}

func countFindings(r structure.Result) map[string]findingCount {
	counts := make(map[string]findingCount)
	for _, issue := range r.Issues {
		if issue.NodeID == "" {
			continue
		}
		c := counts[issue.NodeID]
		switch issue.Kind {
		case structure.KindError:
			c.errors++
		case structure.KindWarning:
			c.warnings++
		}
		counts[issue.NodeID] = c
	}
	return counts
}

// addOutline adds n below parent. seen counts labels per parent, since
// gtree merges siblings with identical text.
func addOutline(parent *gtree.Node, n *analysis.Node, findings map[string]findingCount, seen map[string]int) {
	label := outlineLabel(n, findings)
	seen[label]++
	if c := seen[label]; c > 1 {
		label = fmt.Sprintf("%s #%d", label, c)
	}

	node := parent.Add(label)
	children := map[string]int{}
	for _, child := range n.Children {
		addOutline(node, child, findings, children)
	}
}

func outlineLabel(n *analysis.Node, findings map[string]findingCount) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", n.Type, oneLine(n.Title))

	var extra []string
	if n.ID != "" {
		extra = append(extra, n.ID)
	}
	if n.EstimatedHours != nil {
		extra = append(extra, strconv.FormatFloat(*n.EstimatedHours, 'f', -1, 64)+"h")
	}
	if len(extra) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(extra, ", "))
	}

	if c, ok := findings[n.ID]; ok && n.ID != "" {
		if c.errors > 0 {
			fmt.Fprintf(&b, " ✗%d", c.errors)
		}
		if c.warnings > 0 {
			fmt.Fprintf(&b, " !%d", c.warnings)
		}
	}
	return b.String()
}

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "(untitled)"
	}
	return s
}
