// Package poem classifies the meter of Central Kurdish poems as syllabic,
// quantitative (aruz) or free verse.
//
// Every line is a hemistich. Lines are syllabified by the G2P converter,
// counted for the syllabic analysis, reduced to heavy/light skeletons and
// matched against the meter catalog by weighted edit distance.
package poem

import (
	"fmt"
	"math"
	"strings"

	"github.com/ppiankov/kurdg2p/internal/g2p"
	"github.com/ppiankov/kurdg2p/internal/model"
	"github.com/ppiankov/kurdg2p/internal/normalize"
	"github.com/ppiankov/kurdg2p/internal/phoneme"
	"github.com/ppiankov/kurdg2p/internal/resources"
)

// maxDistance is the largest edit distance that still scores for a pattern.
const maxDistance = 4

// Verdict thresholds
const (
	metricalMarginLong  = 40.0 // mode above longVerseSyllables
	metricalMarginShort = 50.0
	longVerseSyllables  = 10
	syllabicMargin      = 40.0
)

// Classifier scans poems against the meter catalog. It holds no per-poem
// state and is safe for concurrent use.
type Classifier struct {
	conv   *g2p.Converter
	loader *resources.Loader
}

// NewClassifier creates a classifier. A nil loader selects the embedded
// meter catalog.
func NewClassifier(conv *g2p.Converter, loader *resources.Loader) *Classifier {
	if loader == nil {
		loader = resources.NewLoader(nil)
	}
	return &Classifier{conv: conv, loader: loader}
}

// Syllabify normalizes a poem and converts it line by line with numbers
// spelled out, the conjunction merged and one reading per word.
func (c *Classifier) Syllabify(poem string) ([]string, error) {
	out, err := c.conv.Sentence(normalize.ForPoem(poem), g2p.Options{
		SingleOutput:     true,
		MergeConjunction: true,
		ConvertNumbers:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("syllabify poem: %w", err)
	}
	return strings.Split(out, "\n"), nil
}

// Classify syllabifies and classifies raw poem text.
func (c *Classifier) Classify(poem string) (*model.Classification, error) {
	lines, err := c.Syllabify(poem)
	if err != nil {
		return nil, err
	}
	return c.ClassifyHemistichs(lines)
}

// ClassifyHemistichs classifies already syllabified hemistichs.
func (c *Classifier) ClassifyHemistichs(hemistichs []string) (*model.Classification, error) {
	tables, err := c.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load meter catalog: %w", err)
	}
	return classify(hemistichs, tables.Meters), nil
}

func classify(hemistichs []string, meters []resources.MeterPattern) *model.Classification {
	res := &model.Classification{}

	var counts []int
	for _, h := range hemistichs {
		if n := strings.Count(h, phoneme.MarkString); n > 0 {
			counts = append(counts, n)
		}
	}
	if len(counts) == 0 {
		res.Undetermined = true
		res.Details = emptyDetails(len(hemistichs))
		return res
	}

	value, freq := mode(counts)
	res.Syllabic = value
	res.SyllabicConfidence = float64(freq) / float64(len(counts)) * 100

	// Quantitative analysis
	scores := make([]int, len(meters))
	var matches []model.ScannedHemistich
	for i, h := range hemistichs {
		matches = append(matches, match(Weights(h), i, meters, scores)...)
	}

	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	res.Quantitative = meters[best].Title
	res.QuantitativeConfidence = float64(scores[best]) / maxDistance / float64(len(counts)) * 100

	res.Details = emptyDetails(len(hemistichs))
	for i := range res.Details {
		for _, m := range matches {
			if m.LineNo == i && m.MeterID == best {
				res.Details[i] = m
				break
			}
		}
	}

	// Overall verdict; the order of the checks matters.
	sd := stdDev(counts)
	metricalMargin := metricalMarginShort
	if res.Syllabic > longVerseSyllables {
		metricalMargin = metricalMarginLong
	}

	switch {
	case sd > float64(res.Syllabic)/10:
		res.OveralMeterType = model.MeterFreeVerse
	case res.QuantitativeConfidence >= metricalMargin:
		res.OveralMeterType = model.MeterQuantitative
		res.OveralPattern = res.Quantitative
	case res.SyllabicConfidence >= syllabicMargin && sd < 1:
		res.OveralMeterType = model.MeterSyllabic
		res.OveralPattern = fmt.Sprintf("%dSyllabic", res.Syllabic)
	}

	return res
}

// match scores the skeletons of one hemistich against every meter, adding
// to scores, and returns every skeleton at the closest in-range distance.
func match(skeletons []string, line int, meters []resources.MeterPattern, scores []int) []model.ScannedHemistich {
	if len(skeletons) == 0 || skeletons[0] == "" {
		return nil
	}

	var out []model.ScannedHemistich
	dists := make([]int, len(skeletons))

	for p, meter := range meters {
		lowest := math.MaxInt
		for j, s := range skeletons {
			dists[j] = Distance(s, meter.Weights)
			lowest = min(lowest, dists[j])
		}
		if lowest > maxDistance {
			continue
		}

		scores[p] += maxDistance - lowest
		for j, d := range dists {
			if d == lowest {
				out = append(out, model.ScannedHemistich{
					LineNo:  line,
					Scanned: skeletons[j],
					MeterID: p,
					Dist:    d,
					Matched: true,
				})
			}
		}
	}

	return out
}

func emptyDetails(n int) []model.ScannedHemistich {
	details := make([]model.ScannedHemistich, n)
	for i := range details {
		details[i].LineNo = i
	}
	return details
}
