// Package resources loads the versioned reference tables the G2P engine and
// the meter classifier depend on: irregular words, deterministic letter
// substitutions, the meter catalog and the phoneme-to-IPA map.
//
// Tables are embedded YAML documents. A Loader parses and compiles them at
// most once; after that they are immutable and safe to share.
package resources

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var embedded embed.FS

// ErrMissingReferenceData is returned when a required table cannot be read,
// parsed or compiled. It is fatal: callers must not continue with partial tables.
var ErrMissingReferenceData = errors.New("missing reference data")

const (
	exceptionsFile = "tables/g2p_exceptions.yaml"
	certainFile    = "tables/g2p_certain.yaml"
	patternsFile   = "tables/poem_patterns.yaml"
	ipaFile        = "tables/phoneme_ipa.yaml"
)

// Rule is one ordered (pattern, replacement) substitution.
// Replace uses regexp expansion syntax ($1, ${name}).
type Rule struct {
	Find    string `yaml:"find"`
	Replace string `yaml:"replace"`

	re *regexp.Regexp
}

// Apply rewrites every match of the rule in s.
func (r Rule) Apply(s string) string {
	if r.re == nil {
		return s
	}
	return r.re.ReplaceAllString(s, r.Replace)
}

// ApplyAll runs the rules strictly in order; later rules see earlier output.
func ApplyAll(rules []Rule, s string) string {
	for _, r := range rules {
		s = r.Apply(s)
	}
	return s
}

// MeterPattern is a catalog entry: canonical weight string and display title.
type MeterPattern struct {
	Freq    int    `yaml:"freq" json:"freq"`
	Weights string `yaml:"weights" json:"weights"`
	Title   string `yaml:"title" json:"title"`
}

// Tables is the full set of reference data.
type Tables struct {
	Exceptions []Rule
	Certain    []Rule
	Meters     []MeterPattern
	IPA        []Rule
}

type ruleFile struct {
	Version int    `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

type patternFile struct {
	Version  int            `yaml:"version"`
	Patterns []MeterPattern `yaml:"patterns"`
}

// Loader loads Tables once from a filesystem.
type Loader struct {
	fsys fs.FS

	once   sync.Once
	tables *Tables
	err    error
}

// NewLoader creates a loader reading from fsys. A nil fsys selects the
// tables embedded in the binary.
func NewLoader(fsys fs.FS) *Loader {
	if fsys == nil {
		fsys = embedded
	}
	return &Loader{fsys: fsys}
}

// Load parses every table on first call and returns the same result (or the
// same error) on every later call, from any goroutine.
func (l *Loader) Load() (*Tables, error) {
	l.once.Do(func() {
		l.tables, l.err = load(l.fsys)
	})
	return l.tables, l.err
}

// MustLoad is Load for callers that treat missing tables as a programming error.
func (l *Loader) MustLoad() *Tables {
	t, err := l.Load()
	if err != nil {
		panic(err)
	}
	return t
}

func load(fsys fs.FS) (*Tables, error) {
	exceptions, err := loadRules(fsys, exceptionsFile)
	if err != nil {
		return nil, err
	}
	certain, err := loadRules(fsys, certainFile)
	if err != nil {
		return nil, err
	}
	ipa, err := loadRules(fsys, ipaFile)
	if err != nil {
		return nil, err
	}
	meters, err := loadPatterns(fsys, patternsFile)
	if err != nil {
		return nil, err
	}

	return &Tables{
		Exceptions: exceptions,
		Certain:    certain,
		Meters:     meters,
		IPA:        ipa,
	}, nil
}

func loadRules(fsys fs.FS, name string) ([]Rule, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrMissingReferenceData, name, err)
	}

	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrMissingReferenceData, name, err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("%w: %s has no rules", ErrMissingReferenceData, name)
	}

	for i := range f.Rules {
		re, err := regexp.Compile(f.Rules[i].Find)
		if err != nil {
			return nil, fmt.Errorf("%w: %s rule %d (%q): %v", ErrMissingReferenceData, name, i, f.Rules[i].Find, err)
		}
		f.Rules[i].re = re
	}

	return f.Rules, nil
}

func loadPatterns(fsys fs.FS, name string) ([]MeterPattern, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrMissingReferenceData, name, err)
	}

	var f patternFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrMissingReferenceData, name, err)
	}
	if len(f.Patterns) == 0 {
		return nil, fmt.Errorf("%w: %s has no patterns", ErrMissingReferenceData, name)
	}

	for i, p := range f.Patterns {
		if p.Weights == "" {
			return nil, fmt.Errorf("%w: %s pattern %d has no weights", ErrMissingReferenceData, name, i)
		}
	}

	return f.Patterns, nil
}
