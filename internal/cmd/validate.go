package cmd

import (
	"fmt"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/treecheck/internal/gate"
	"github.com/felixgeelhaar/treecheck/internal/telemetry"
	"github.com/felixgeelhaar/treecheck/internal/ux"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a tree and gate on its quality",
	Long: dedent.Dedent(`
		Validate checks the structure of an analysis tree and prints every
		error, warning and suggestion together with the quality score.

		The command fails (exit code 3) when the tree has errors, when its
		score is below --min-score, or when it has warnings and
		--fail-on-warnings is set. Trees larger than the configured
		gate.max_nodes or deeper than gate.max_depth are refused without
		being validated.`),
	Example: dedent.Dedent(`
		  treecheck validate --in plan.yaml
		  treecheck validate --in plan.json --min-score 80 --format json`),
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("in", "", "tree file (JSON or YAML); discovered in the working directory if omitted")
	validateCmd.Flags().Int("min-score", 0, "minimum quality score (0-100); overrides gate.min_score")
	validateCmd.Flags().Bool("fail-on-warnings", false, "reject trees that have warnings")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	rs := current()
	in, _ := cmd.Flags().GetString("in")
	failOnWarnings, _ := cmd.Flags().GetBool("fail-on-warnings")

	ctx, span := telemetry.StartCommandSpan(cmd.Context(), "validate")
	defer span.End()

	policy := rs.cfg
	if cmd.Flags().Changed("min-score") {
		minScore, _ := cmd.Flags().GetInt("min-score")
		if minScore < 0 || minScore > 100 {
			return fmt.Errorf("invalid argument %d for --min-score: must be between 0 and 100", minScore)
		}
		policy.Gate.MinScore = minScore
	}
	if failOnWarnings {
		policy.Gate.FailOnWarnings = true
	}

	path, doc, err := loadTree(in)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	rs.logger.DebugContext(ctx, "tree loaded", "path", path, "name", doc.Name, "roots", len(doc.Nodes))

	g := gate.New(policy, gate.WithMetrics(rs.metrics), gate.WithLogger(rs.logger))
	verdict, checkErr := g.Check(ctx, doc.Nodes)
	if verdict.Outcome == "" || verdict.Outcome == gate.OutcomeRefused {
		// Nothing was validated, so there is no report to show.
		telemetry.RecordError(span, checkErr)
		return checkErr
	}

	formatter, err := newFormatter(rs.cc, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	report := ux.Report{
		Source:      path,
		Fingerprint: verdict.Fingerprint,
		Passed:      verdict.Passed,
		Result:      verdict.Result,
	}
	if err := formatter.Format(report); err != nil {
		return err
	}

	if checkErr != nil {
		telemetry.RecordError(span, checkErr)
		return checkErr
	}
	telemetry.RecordSuccess(span, telemetry.ResultAttributes(verdict.Result)...)
	return nil
}
