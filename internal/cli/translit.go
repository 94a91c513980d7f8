package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/kurdg2p/internal/g2p"
	"github.com/ppiankov/kurdg2p/internal/pipeline"
	"github.com/ppiankov/kurdg2p/internal/resources"
	"github.com/ppiankov/kurdg2p/internal/translit"
)

var (
	translitTo      string
	translitConvert bool
)

// translitCmd represents the translit command
var translitCmd = &cobra.Command{
	Use:   "translit [text...]",
	Short: "Transliterate phonemic output to Hawar Latin, IPA or Arabic script",
	Long: `Translit rewrites phonemic text (the output of convert) in another
script. Without arguments it reads standard input.

Targets:
  hawar    Hawar Latin (syllable marks removed)
  simple   Hawar Latin with ḧ ř ł ẍ flattened to ASCII-friendly letters
  ipa      IPA with syllables separated by ·
  arabic   Arabic-based Kurdish script from Hawar Latin
  digraph  like arabic, also accepting gh hh ll rr

Example:
  kurdg2p translit --to ipa "ˈşeˈwû ˈřoj"
  kurdg2p translit --convert --to hawar "شەو و ڕۆژ"
  kurdg2p translit --to arabic "Ez çûm bo mal"`,
	RunE: runTranslit,
}

func init() {
	rootCmd.AddCommand(translitCmd)
	translitCmd.Flags().StringVar(&translitTo, "to", "hawar", "target: hawar, simple, ipa, arabic or digraph")
	translitCmd.Flags().BoolVar(&translitConvert, "convert", false, "input is Kurdish in Arabic script; convert it first")
}

func runTranslit(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = strings.TrimRight(string(data), "\n")
	}

	loader := resources.NewLoader(nil)

	if translitConvert {
		cfg, err := commandConfig(cmd)
		if err != nil {
			return err
		}
		conv := g2p.NewConverter(loader, pipeline.NewStore(cfg.Cache), logger)
		text, err = conv.Sentence(text, g2p.Options{
			SingleOutput:     true,
			MergeConjunction: cfg.G2P.MergeConjunction,
			ConvertNumbers:   cfg.G2P.ConvertNumbers,
		})
		if err != nil {
			return err
		}
	}

	var out string
	switch translitTo {
	case "hawar":
		out = translit.ToHawar(text)
	case "simple":
		out = translit.ToSimpleLatin(text)
	case "ipa":
		tables, err := loader.Load()
		if err != nil {
			return fmt.Errorf("load IPA table: %w", err)
		}
		out = translit.NewIPA(tables).Convert(text)
	case "arabic":
		out = translit.LatinToArabic(translit.ToHawar(text))
	case "digraph":
		out = translit.DigraphLatinToArabic(translit.ToHawar(text))
	default:
		return fmt.Errorf("unknown target %q", translitTo)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
