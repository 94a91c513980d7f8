// Package pipeline loads inputs (files, stdin, URLs, HTML pages), runs them
// through the G2P converter or the poem classifier and renders reports.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/kurdg2p/internal/cache"
	"github.com/ppiankov/kurdg2p/internal/extract"
	"github.com/ppiankov/kurdg2p/internal/g2p"
	"github.com/ppiankov/kurdg2p/internal/model"
	"github.com/ppiankov/kurdg2p/internal/poem"
	"github.com/ppiankov/kurdg2p/internal/resources"
)

// Stdin is the source name that reads standard input.
const Stdin = "-"

// Pipeline orchestrates loading, conversion and classification. One
// Pipeline shares a single Converter, and therefore one Word Cache, across
// every input it processes.
type Pipeline struct {
	converter  *g2p.Converter
	classifier *poem.Classifier
	fetcher    *Fetcher
	extractor  *extract.TextExtractor
	options    g2p.Options
	logger     *slog.Logger
	stdin      io.Reader
}

// NewPipeline wires a pipeline from the effective configuration
func NewPipeline(cfg *model.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	loader := resources.NewLoader(nil)
	converter := g2p.NewConverter(loader, NewStore(cfg.Cache), logger)

	fetcher := NewFetcher(
		cfg.HTTP.Timeout,
		cfg.HTTP.UserAgent,
		cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.InsecureTLS,
		cfg.HTTP.HTTPProxy,
		cfg.HTTP.HTTPSProxy,
		cfg.HTTP.NoProxy,
	)
	if cfg.HTTP.RespectRobots {
		fetcher.RespectRobots()
	}

	return &Pipeline{
		converter:  converter,
		classifier: poem.NewClassifier(converter, loader),
		fetcher:    fetcher,
		extractor:  extract.NewTextExtractor(true),
		options: g2p.Options{
			SingleOutput:     cfg.G2P.SingleOutput,
			MergeConjunction: cfg.G2P.MergeConjunction,
			ConvertNumbers:   cfg.G2P.ConvertNumbers,
		},
		logger: logger,
		stdin:  os.Stdin,
	}
}

// NewStore builds the Word Cache backend. The in-memory layer is always
// present; cache.dir adds a persistent layer unless the cache is disabled.
func NewStore(cfg model.CacheConfig) cache.Store {
	memory := cache.NewMemoryStore()
	if !cfg.Enabled || cfg.Dir == "" {
		return memory
	}
	return cache.NewLayeredStore(memory, cache.NewDiskStore(cfg.Dir, cfg.TTL))
}

// SetStdin replaces the reader used for the "-" source.
func (p *Pipeline) SetStdin(r io.Reader) {
	p.stdin = r
}

// Converter exposes the shared converter.
func (p *Pipeline) Converter() *g2p.Converter {
	return p.converter
}

// Input is loaded source text
type Input struct {
	Source    string
	Title     string
	Text      string
	FetchMeta *model.FetchMeta
}

// Load reads source: "-" for stdin, an http(s) URL, or a file path. HTML
// pages are reduced to their visible Kurdish lines.
func (p *Pipeline) Load(ctx context.Context, source string) (*Input, error) {
	switch {
	case source == Stdin:
		data, err := io.ReadAll(p.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return &Input{Source: source, Text: string(data)}, nil

	case isURL(source):
		fetched, err := p.fetcher.FetchWithRetry(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		in := &Input{
			Source:    source,
			Title:     fetched.Subject,
			Text:      fetched.Body,
			FetchMeta: &fetched.Meta,
		}
		if fetched.IsHTML() {
			if err := p.fromHTML(in, fetched.HTML); err != nil {
				return nil, err
			}
		}
		return in, nil

	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		ext := strings.ToLower(filepath.Ext(source))
		in := &Input{
			Source: source,
			Title:  strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)),
			Text:   string(data),
		}
		if ext == ".html" || ext == ".htm" || ext == ".xhtml" {
			if err := p.fromHTML(in, in.Text); err != nil {
				return nil, err
			}
		}
		return in, nil
	}
}

func (p *Pipeline) fromHTML(in *Input, page string) error {
	doc, err := p.extractor.Extract(page)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}
	if doc.Title != "" {
		in.Title = doc.Title
	}
	in.Text = doc.Text()
	p.logger.Debug("extracted page text", "source", in.Source, "lines", len(doc.Lines))
	return nil
}

// Process loads source and produces a report of the given kind
func (p *Pipeline) Process(ctx context.Context, kind, source string) (*model.Report, error) {
	in, err := p.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	switch kind {
	case model.KindConvert:
		return p.Convert(in)
	case model.KindPoem:
		return p.Poem(in)
	default:
		return nil, fmt.Errorf("unknown report kind %q", kind)
	}
}

// Convert renders an input as phonemic text
func (p *Pipeline) Convert(in *Input) (*model.Report, error) {
	output, err := p.converter.Sentence(in.Text, p.options)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	report := newReport(in, model.KindConvert)
	report.Output = output
	report.Lines = zipLines(in.Text, strings.Split(output, "\n"))
	return report, nil
}

// Poem syllabifies an input and classifies its meter
func (p *Pipeline) Poem(in *Input) (*model.Report, error) {
	hemistichs, err := p.classifier.Syllabify(in.Text)
	if err != nil {
		return nil, err
	}
	classification, err := p.classifier.ClassifyHemistichs(hemistichs)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	report := newReport(in, model.KindPoem)
	report.Output = strings.Join(hemistichs, "\n")
	report.Lines = zipLines(in.Text, hemistichs)
	for i := range report.Lines {
		report.Lines[i].Weights = poem.Weights(report.Lines[i].Phonemes)
	}
	report.Classification = classification
	return report, nil
}

func newReport(in *Input, kind string) *model.Report {
	return &model.Report{
		Source:      in.Source,
		Title:       in.Title,
		Kind:        kind,
		ProcessedAt: time.Now().UTC(),
		FetchMeta:   in.FetchMeta,
		Input:       in.Text,
	}
}

// zipLines pairs input lines with output lines. The converter trims the
// text before converting, so the trimmed input has as many lines as the
// output; when it does not, the input side is left empty.
func zipLines(input string, output []string) []model.Line {
	inLines := strings.Split(strings.TrimSpace(strings.ReplaceAll(input, "\r", "")), "\n")
	if len(inLines) != len(output) {
		inLines = make([]string, len(output))
	}

	lines := make([]model.Line, len(output))
	for i, out := range output {
		lines[i] = model.Line{Text: strings.TrimSpace(inLines[i]), Phonemes: out}
	}
	return lines
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
