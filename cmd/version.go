package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/deltafood/delta/internal/version"
)

var (
	versionOutput *OutputFlags
	versionShort  bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information: release, git commit, build time, Go
version and platform.

Examples:
  delta version                 # Full version line
  delta version --short         # Version number only
  delta version --format json   # Output as JSON`,
	Args: cobra.NoArgs,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionOutput = AddOutputFlags(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show short version only")
}

func runVersionCommand(cmd *cobra.Command, args []string) error {
	if err := versionOutput.Validate(); err != nil {
		return err
	}

	info := version.Get()
	return versionOutput.Write(cmd.OutOrStdout(), info, func(w io.Writer) {
		if versionShort {
			fmt.Fprintln(w, info.Short())
			return
		}
		fmt.Fprintln(w, info.String())
	})
}
