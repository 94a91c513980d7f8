package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/ppiankov/kurdg2p/internal/model"
)

// Processor turns one source into a report
type Processor interface {
	Process(ctx context.Context, kind, source string) (*model.Report, error)
}

// InputJob processes one input of a batch
type InputJob struct {
	Index     int
	Kind      string
	Source    string
	Processor Processor
	Limiter   *Limiter
}

// Execute runs the job, waiting on the host limiter first for URLs
func (j *InputJob) Execute(ctx context.Context) Result {
	result := &InputResult{Index: j.Index, Source: j.Source}

	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Source); err != nil {
			result.Error = fmt.Errorf("rate limit: %w", err)
			return result
		}
	}

	result.Report, result.Error = j.Processor.Process(ctx, j.Kind, j.Source)
	if result.Error != nil {
		result.Report = nil
	}
	return result
}

// InputResult is the outcome of one InputJob
type InputResult struct {
	Index  int
	Source string
	Report *model.Report
	Error  error
}

// GetError returns the processing error
func (r *InputResult) GetError() error {
	return r.Error
}

// BatchProcessor processes many inputs concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. A zero requestsPerSecond
// disables rate limiting.
func NewBatchProcessor(processor Processor, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	b := &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
	if requestsPerSecond > 0 {
		b.limiter = NewLimiter(requestsPerSecond, burst)
	}
	return b
}

// Process runs every source and returns the results in input order
func (b *BatchProcessor) Process(ctx context.Context, kind string, sources []string) []*InputResult {
	if len(sources) == 0 {
		return []*InputResult{}
	}

	jobs := make([]Job, len(sources))
	for i, source := range sources {
		jobs[i] = &InputJob{
			Index:     i,
			Kind:      kind,
			Source:    source,
			Processor: b.processor,
			Limiter:   b.limiter,
		}
	}

	pool := NewPoolContext(ctx, b.concurrency)
	pool.Start()

	results := make([]*InputResult, 0, len(sources))
	for _, r := range pool.Run(jobs) {
		results = append(results, r.(*InputResult))
	}
	slices.SortFunc(results, func(a, b *InputResult) int { return a.Index - b.Index })

	return results
}

// ProcessFile reads a list of sources and processes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, kind, listPath string) ([]*InputResult, error) {
	sources, err := ReadInputsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}
	return b.Process(ctx, kind, sources), nil
}

// ReadInputsFromFile reads one source (file path or URL) per line. Blank
// lines and # comments are skipped; duplicates are dropped.
func ReadInputsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || seen[line] {
			continue
		}
		seen[line] = true
		sources = append(sources, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
