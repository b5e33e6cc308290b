package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/treecheck/internal/version"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Long:        `Print the version, commit and build details of treecheck.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        runVersion,
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the version number")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	rs := current()
	short, _ := cmd.Flags().GetBool("short")
	info := version.GetInfo()

	if short {
		fmt.Fprintln(cmd.OutOrStdout(), info.Short())
		return nil
	}

	formatter, err := newFormatter(rs.cc, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return formatter.Format(info)
}
