package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deltafood/delta/internal/ui"
)

var sectionsOutput *OutputFlags

var sectionsCmd = &cobra.Command{
	Use:     "sections",
	Aliases: []string{"ls"},
	Short:   "List the page sections",
	Long: `List the sections of the page in render order. Each can be previewed
on its own at /sections/<name> while the server runs.`,
	Args: cobra.NoArgs,
	RunE: runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
	sectionsOutput = AddOutputFlags(sectionsCmd)
}

type sectionEntry struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

func runSections(cmd *cobra.Command, args []string) error {
	if err := sectionsOutput.Validate(); err != nil {
		return err
	}

	all := ui.DefaultRegistry().All()
	entries := make([]sectionEntry, 0, len(all))
	for _, s := range all {
		entries = append(entries, sectionEntry{Name: s.Name, Description: s.Description})
	}

	return sectionsOutput.Write(cmd.OutOrStdout(), entries, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDESCRIPTION")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Description)
		}
		tw.Flush()
	})
}
