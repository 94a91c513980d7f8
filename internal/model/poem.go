package model

// Overall meter types
const (
	MeterFreeVerse    = "Free Verse/شیعری نوێ"
	MeterQuantitative = "Quantitative/عەرووزی"
	MeterSyllabic     = "Syllabic/بڕگەیی"
)

// ScannedHemistich is one match of a hemistich against a meter pattern.
// Matched is false for hemistichs that never came within range of the
// winning pattern.
type ScannedHemistich struct {
	LineNo  int    `json:"lineNo"`
	Scanned string `json:"scanned"`
	MeterID int    `json:"meterID"`
	Dist    int    `json:"dist"`
	Matched bool   `json:"matched"`
}

// Classification is the verdict for one poem. OveralMeterType is empty when
// no rule fired; Undetermined is set when no hemistich had a syllable.
type Classification struct {
	Syllabic               int                `json:"syllabic"`
	SyllabicConfidence     float64            `json:"syllabicConfidence"`
	Quantitative           string             `json:"quantitative"`
	QuantitativeConfidence float64            `json:"quantitativeConfidence"`
	OveralPattern          string             `json:"overalPattern"`
	OveralMeterType        string             `json:"overalMeterType"`
	Details                []ScannedHemistich `json:"details"`
	Undetermined           bool               `json:"undetermined"`
}
