package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/kurdg2p/internal/model"
	"github.com/ppiankov/kurdg2p/internal/pipeline"
	"github.com/ppiankov/kurdg2p/internal/worker"
)

var (
	workers      int
	outputDir    string
	batchKind    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Convert or classify many files and URLs in parallel",
	Long: `Batch reads a list of inputs (file paths or URLs, one per line; blank
lines and # comments are skipped) and processes them concurrently. All
workers share one Word Cache, so repeated words are converted once.

Each input gets a JSON and a Markdown report in the output directory.
URLs are rate limited per host.

Example:
  kurdg2p batch poems.txt --kind poem
  kurdg2p batch corpus.txt --workers 8 --output-dir ./phonemes --cache-dir ~/.kurdg2p/words`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&workers, "workers", 4, "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./kurdg2p-reports", "output directory for reports")
	batchCmd.Flags().StringVar(&batchKind, "kind", model.KindConvert, "what to do with each input: convert or poem")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&allReadings, "all", false, "keep every reading within tolerance")
	batchCmd.Flags().BoolVar(&noMerge, "no-merge", false, "read a standalone و as û instead of merging it")
	batchCmd.Flags().BoolVar(&spellNumbers, "numbers", false, "spell out digits before conversion")
	batchCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification for URLs")
	batchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "ignore robots.txt for URLs")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist converted words in this directory")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	if batchKind != model.KindConvert && batchKind != model.KindPoem {
		return fmt.Errorf("unknown kind %q (want convert or poem)", batchKind)
	}

	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  kurdg2p batch\n")
	fmt.Fprintf(stderr, "  Input list:   %s\n", file)
	fmt.Fprintf(stderr, "  Kind:         %s\n", batchKind)
	fmt.Fprintf(stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(stderr, "\n")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, logger)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	results, err := processor.ProcessFile(ctx, batchKind, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Verbose)
	used := make(map[string]int)
	failures := 0

	for _, result := range results {
		if result.Error != nil {
			failures++
			fmt.Fprintf(stderr, "✗ %s: %v\n", result.Source, result.Error)
			continue
		}

		slug := uniqueSlug(used, sanitizeFilename(result.Report.Title, result.Index))
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderFile(result.Report, jsonPath, model.FormatJSON); err != nil {
			failures++
			fmt.Fprintf(stderr, "✗ %s: %v\n", result.Source, err)
			continue
		}
		if err := renderer.RenderFile(result.Report, mdPath, model.FormatMarkdown); err != nil {
			failures++
			fmt.Fprintf(stderr, "✗ %s: %v\n", result.Source, err)
			continue
		}

		fmt.Fprintf(stderr, "✓ %s%s\n", result.Source, verdictSuffix(result.Report))
	}

	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Total:     %d inputs\n", len(results))
	fmt.Fprintf(stderr, "  Success:   %d\n", len(results)-failures)
	fmt.Fprintf(stderr, "  Failures:  %d\n", failures)
	fmt.Fprintf(stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(stderr, "\n")

	if failures > 0 && failures == len(results) {
		return fmt.Errorf("all %d inputs failed", failures)
	}
	return nil
}

func verdictSuffix(r *model.Report) string {
	c := r.Classification
	if c == nil {
		return ""
	}
	if c.Undetermined {
		return " (undetermined)"
	}
	if c.OveralPattern != "" {
		return fmt.Sprintf(" (%s: %s)", c.OveralMeterType, c.OveralPattern)
	}
	return fmt.Sprintf(" (%s)", c.OveralMeterType)
}

var filenameReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
)

// sanitizeFilename turns a report title into a file name. Untitled
// reports are named by their position in the list.
func sanitizeFilename(title string, index int) string {
	s := strings.Trim(filenameReplacer.Replace(strings.TrimSpace(title)), ".-_")
	if s == "" {
		return fmt.Sprintf("input-%03d", index+1)
	}

	runes := []rune(s)
	if len(runes) > 80 {
		s = string(runes[:80])
	}
	return s
}

func uniqueSlug(used map[string]int, slug string) string {
	used[slug]++
	if n := used[slug]; n > 1 {
		return fmt.Sprintf("%s-%d", slug, n)
	}
	return slug
}
