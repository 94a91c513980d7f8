// Package extract pulls readable lines out of HTML pages, so that poems and
// articles published on the web can be converted like plain text files.
package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/kurdg2p/internal/normalize"
)

// Document is the readable content of an HTML page
type Document struct {
	Title string
	Lines []string
}

// Text joins the lines with newlines.
func (d *Document) Text() string {
	return strings.Join(d.Lines, "\n")
}

// blockElements end the current line when they open or close.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true,
	"ul": true,
}

// TextExtractor extracts visible text line by line
type TextExtractor struct {
	kurdishOnly bool
}

// NewTextExtractor creates an extractor. With kurdishOnly, lines without a
// single Kurdish letter (menus, dates, copyright footers) are dropped.
func NewTextExtractor(kurdishOnly bool) *TextExtractor {
	return &TextExtractor{kurdishOnly: kurdishOnly}
}

// Extract parses htmlContent and returns its title and visible lines
func (e *TextExtractor) Extract(htmlContent string) (*Document, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	w := &lineWriter{}
	w.walk(doc, false)
	w.flush()

	out := &Document{Title: w.title}
	for _, line := range w.lines {
		if e.kurdishOnly && !hasKurdishLetter(line) {
			continue
		}
		out.Lines = append(out.Lines, line)
	}

	return out, nil
}

type lineWriter struct {
	title   string
	lines   []string
	current []string
}

func (w *lineWriter) walk(n *html.Node, pre bool) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "iframe", "template":
			return
		case "title":
			w.title = strings.TrimSpace(textContent(n))
			return
		case "pre":
			pre = true
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		w.flush()
	}

	if n.Type == html.TextNode {
		w.text(n.Data, pre)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, pre)
	}

	if block {
		w.flush()
	}
}

func (w *lineWriter) text(data string, pre bool) {
	if !pre {
		if field := strings.Join(strings.Fields(data), " "); field != "" {
			w.current = append(w.current, field)
		}
		return
	}

	parts := strings.Split(data, "\n")
	for i, part := range parts {
		if i > 0 {
			w.flush()
		}
		if field := strings.Join(strings.Fields(part), " "); field != "" {
			w.current = append(w.current, field)
		}
	}
}

func (w *lineWriter) flush() {
	if len(w.current) == 0 {
		return
	}
	w.lines = append(w.lines, strings.Join(w.current, " "))
	w.current = w.current[:0]
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		buf.WriteString(textContent(c))
	}
	return buf.String()
}

func hasKurdishLetter(s string) bool {
	for _, r := range s {
		if normalize.IsLetter(r) {
			return true
		}
	}
	return false
}
