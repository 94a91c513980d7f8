package model

import "time"

// Report is one processed input as rendered by the pipeline
type Report struct {
	Source      string     `json:"source"`          // file path, URL or "-" for stdin
	Title       string     `json:"title,omitempty"` // page title or file name
	Kind        string     `json:"kind"`            // "convert" or "poem"
	ProcessedAt time.Time  `json:"processed_at"`    // when processing finished
	FetchMeta   *FetchMeta `json:"fetch_meta,omitempty"`

	Input  string `json:"input"`            // normalized input text
	Output string `json:"output,omitempty"` // phonemic text

	Lines          []Line          `json:"lines,omitempty"`          // per-line phonemes
	Classification *Classification `json:"classification,omitempty"` // poem verdict
}

// Report kinds
const (
	KindConvert = "convert"
	KindPoem    = "poem"
)

// Line is one input line with its phonemic rendering
type Line struct {
	Text     string   `json:"text"`
	Phonemes string   `json:"phonemes"`
	Weights  []string `json:"weights,omitempty"` // CV skeletons, poems only
}

// FetchMeta contains HTTP metadata for URL inputs
type FetchMeta struct {
	StatusCode   int    `json:"status_code"`
	ContentType  string `json:"content_type,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
	ETag         string `json:"etag,omitempty"`
	FinalURL     string `json:"final_url,omitempty"`
}
