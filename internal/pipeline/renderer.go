package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/kurdg2p/internal/model"
)

// Renderer writes reports as text, JSON or Markdown
type Renderer struct {
	verbose bool
}

// NewRenderer creates a renderer. Verbose text output adds per-line
// skeletons and match details.
func NewRenderer(verbose bool) *Renderer {
	return &Renderer{verbose: verbose}
}

// Render writes report to w in format
func (r *Renderer) Render(w io.Writer, report *model.Report, format string) error {
	switch format {
	case model.FormatJSON:
		return r.RenderJSON(w, report)
	case model.FormatMarkdown:
		_, err := io.WriteString(w, r.Markdown(report))
		return err
	case model.FormatText, "":
		_, err := io.WriteString(w, r.Text(report))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// RenderJSON writes report as indented JSON
func (r *Renderer) RenderJSON(w io.Writer, report *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// RenderFile writes report to path, creating or truncating it
func (r *Renderer) RenderFile(report *model.Report, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.Render(f, report, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Text is the plain rendering: the phonemic output, and for poems the
// verdict below it.
func (r *Renderer) Text(report *model.Report) string {
	var b strings.Builder
	if report.Kind != model.KindPoem {
		b.WriteString(report.Output)
		b.WriteString("\n")
		return b.String()
	}

	for _, line := range report.Lines {
		b.WriteString(line.Phonemes)
		if r.verbose && len(line.Weights) > 0 {
			fmt.Fprintf(&b, "\t%s", strings.Join(line.Weights, " | "))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	writeVerdict(&b, report.Classification, "")

	if r.verbose && report.Classification != nil {
		for _, d := range report.Classification.Details {
			if !d.Matched {
				continue
			}
			fmt.Fprintf(&b, "line %d: %s (meter %d, distance %d)\n", d.LineNo+1, d.Scanned, d.MeterID, d.Dist)
		}
	}
	return b.String()
}

// Markdown renders report as a Markdown document
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	title := report.Title
	if title == "" {
		title = report.Source
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- Source: `%s`\n", report.Source)
	fmt.Fprintf(&b, "- Processed: %s\n", report.ProcessedAt.Format("2006-01-02 15:04:05 UTC"))
	if report.FetchMeta != nil {
		fmt.Fprintf(&b, "- HTTP: %d %s\n", report.FetchMeta.StatusCode, report.FetchMeta.ContentType)
	}
	b.WriteString("\n")

	if report.Kind == model.KindPoem {
		b.WriteString("## Meter\n\n")
		writeVerdict(&b, report.Classification, "- ")
		b.WriteString("\n")
	}

	b.WriteString("## Lines\n\n")
	if report.Kind == model.KindPoem {
		b.WriteString("| # | Text | Phonemes | Weights |\n|---|---|---|---|\n")
	} else {
		b.WriteString("| # | Text | Phonemes |\n|---|---|---|\n")
	}
	for i, line := range report.Lines {
		if line.Text == "" && line.Phonemes == "" {
			continue
		}
		fmt.Fprintf(&b, "| %d | %s | %s |", i+1, cell(line.Text), cell(line.Phonemes))
		if report.Kind == model.KindPoem {
			fmt.Fprintf(&b, " %s |", cell(strings.Join(line.Weights, " / ")))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeVerdict(b *strings.Builder, c *model.Classification, bullet string) {
	if c == nil {
		return
	}
	if c.Undetermined {
		fmt.Fprintf(b, "%sMeter: undetermined\n", bullet)
		return
	}

	meterType := c.OveralMeterType
	if meterType == "" {
		meterType = "unclassified"
	}
	fmt.Fprintf(b, "%sMeter type: %s\n", bullet, meterType)
	if c.OveralPattern != "" {
		fmt.Fprintf(b, "%sPattern: %s\n", bullet, c.OveralPattern)
	}
	fmt.Fprintf(b, "%sSyllabic: %d (%.2f%%)\n", bullet, c.Syllabic, c.SyllabicConfidence)
	if c.Quantitative != "" {
		fmt.Fprintf(b, "%sQuantitative: %s (%.2f%%)\n", bullet, c.Quantitative, c.QuantitativeConfidence)
	}
}

// cell escapes a Markdown table cell.
func cell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
