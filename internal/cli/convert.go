package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/kurdg2p/internal/model"
	"github.com/ppiankov/kurdg2p/internal/pipeline"
)

var (
	outJSON      string
	outMD        string
	format       string
	timeout      time.Duration
	allReadings  bool
	noMerge      bool
	spellNumbers bool
	insecureTLS  bool
	noRobots     bool
	cacheDir     string
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <text | file | url | ->",
	Short: "Convert Central Kurdish text to phonemic Latin",
	Long: `Convert reads Central Kurdish text in Arabic script and writes it as
syllabified phonemic Latin (ˈ marks each syllable).

The input is a file, an http(s) URL, "-" for standard input, or the
arguments themselves. HTML files and pages are reduced to their visible
Kurdish lines.

Example:
  kurdg2p convert "شەو و ڕۆژ"
  kurdg2p convert article.txt --numbers --format markdown
  kurdg2p convert https://example.org/poem.html --json report.json
  echo "بووین" | kurdg2p convert - --all`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSource(cmd, model.KindConvert, args)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addSourceFlags(convertCmd)
	convertCmd.Flags().BoolVar(&allReadings, "all", false, "keep every reading within tolerance, joined by ¶")
	convertCmd.Flags().BoolVar(&noMerge, "no-merge", false, "read a standalone و as û instead of merging it")
	convertCmd.Flags().BoolVar(&spellNumbers, "numbers", false, "spell out digits before conversion")
}

// addSourceFlags registers the output and HTTP flags shared by convert and poem
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outJSON, "json", "", "also write a JSON report to this path")
	cmd.Flags().StringVar(&outMD, "md", "", "also write a Markdown report to this path")
	cmd.Flags().StringVarP(&format, "format", "f", model.FormatText, "stdout format: text, json or markdown")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")
	cmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification for URLs")
	cmd.Flags().BoolVar(&noRobots, "no-robots", false, "ignore robots.txt for URLs")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist converted words in this directory")
}

// commandConfig loads the configuration and applies the flags the user set
func commandConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("format") {
		cfg.Output.Format = format
	}
	if changed("all") {
		cfg.G2P.SingleOutput = !allReadings
	}
	if changed("no-merge") {
		cfg.G2P.MergeConjunction = !noMerge
	}
	if changed("numbers") {
		cfg.G2P.ConvertNumbers = spellNumbers
	}
	if changed("insecure") {
		cfg.HTTP.InsecureTLS = insecureTLS
	}
	if changed("no-robots") {
		cfg.HTTP.RespectRobots = !noRobots
	}
	if changed("cache-dir") {
		cfg.Cache.Dir = cacheDir
		cfg.Cache.Enabled = true
	}
	if changed("workers") {
		cfg.Concurrency.Workers = workers
	}

	return cfg, validateFormat(cfg.Output.Format)
}

func runSource(cmd *cobra.Command, kind string, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	p := pipeline.NewPipeline(cfg, logger)
	p.SetStdin(cmd.InOrStdin())

	in, err := loadInput(ctx, p, args)
	if err != nil {
		return err
	}
	logger.Debug("input loaded", "source", in.Source, "bytes", len(in.Text))

	var report *model.Report
	if kind == model.KindPoem {
		report, err = p.Poem(in)
	} else {
		report, err = p.Convert(in)
	}
	if err != nil {
		return err
	}

	return writeReport(cmd, report, cfg)
}

// loadInput treats a single argument naming stdin, a URL or an existing
// file as a source; anything else is the text itself.
func loadInput(ctx context.Context, p *pipeline.Pipeline, args []string) (*pipeline.Input, error) {
	if len(args) == 1 {
		arg := args[0]
		if arg == pipeline.Stdin || strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			return p.Load(ctx, arg)
		}
		if info, err := os.Stat(arg); err == nil && !info.IsDir() {
			return p.Load(ctx, arg)
		}
	}
	return &pipeline.Input{Source: "arguments", Text: strings.Join(args, " ")}, nil
}

func writeReport(cmd *cobra.Command, report *model.Report, cfg *model.Config) error {
	renderer := pipeline.NewRenderer(cfg.Output.Verbose)

	if outJSON != "" {
		if err := renderer.RenderFile(report, outJSON, model.FormatJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderFile(report, outMD, model.FormatMarkdown); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	return renderer.Render(cmd.OutOrStdout(), report, cfg.Output.Format)
}
