package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/kurdg2p/internal/g2p"
	"github.com/ppiankov/kurdg2p/internal/model"
	"github.com/ppiankov/kurdg2p/internal/normalize"
	"github.com/ppiankov/kurdg2p/internal/pipeline"
)

var explain bool

// wordCmd represents the word command
var wordCmd = &cobra.Command{
	Use:   "word <word>...",
	Short: "Convert single words and show how they were scored",
	Long: `Word converts each argument as one word. With --explain it lists every
candidate reading with its penalty and the constraints it violates;
selected readings are marked with *.

Example:
  kurdg2p word گرفت
  kurdg2p word بووین --all
  kurdg2p word درێژیی --explain --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWord,
}

func init() {
	rootCmd.AddCommand(wordCmd)
	wordCmd.Flags().BoolVar(&allReadings, "all", false, "print every reading within tolerance")
	wordCmd.Flags().BoolVar(&explain, "explain", false, "list scored candidates with their violations")
	wordCmd.Flags().StringVarP(&format, "format", "f", model.FormatText, "output format: text or json")
	wordCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist converted words in this directory")
}

func runWord(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	conv := g2p.NewConverter(nil, pipeline.NewStore(cfg.Cache), logger)
	out := cmd.OutOrStdout()

	var explanations []*model.WordExplanation
	for _, arg := range args {
		word := normalize.ForG2P(normalize.UnifyNumerals(strings.TrimSpace(arg)))

		if !explain {
			result, err := conv.Word(word, cfg.G2P.SingleOutput)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\t%s\n", arg, result)
			continue
		}

		exp, err := conv.Explain(word)
		if err != nil {
			return err
		}
		explanations = append(explanations, exp)
	}

	if !explain {
		return nil
	}
	if cfg.Output.Format == model.FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(explanations)
	}
	for _, exp := range explanations {
		writeExplanation(out, exp)
	}
	return nil
}

func writeExplanation(w io.Writer, exp *model.WordExplanation) {
	fmt.Fprintf(w, "%s => %s\n", exp.Word, exp.Result)
	for _, c := range exp.Candidates {
		mark := " "
		if c.Selected {
			mark = "*"
		}
		violations := make([]string, 0, len(c.Violations))
		for _, v := range c.Violations {
			violations = append(violations, fmt.Sprintf("%s×%d(%d)", v.Constraint, v.Count, v.Weight))
		}
		fmt.Fprintf(w, "  %s %4d  %-20s %s\n", mark, c.Penalty, c.Phonemes, strings.Join(violations, " "))
	}
	fmt.Fprintln(w)
}
