package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/kurdg2p/internal/model"
)

// poemCmd represents the poem command
var poemCmd = &cobra.Command{
	Use:   "poem <file | url | ->",
	Short: "Classify the meter of a Central Kurdish poem",
	Long: `Poem reads a poem with one hemistich per line, syllabifies it and
reports whether it is syllabic, quantitative (aruz) or free verse.

Quantitative poems are matched against 27 aruz meters by the edit distance
between each hemistich's heavy/light skeleton and the meter's pattern.

Example:
  kurdg2p poem haji-qadir.txt
  kurdg2p poem https://example.org/shiir/nali.html --format markdown
  kurdg2p poem - --json poem.json < poem.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSource(cmd, model.KindPoem, args)
	},
}

func init() {
	rootCmd.AddCommand(poemCmd)
	addSourceFlags(poemCmd)
}
