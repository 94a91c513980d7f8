package model

// Violation is one triggered EVAL constraint
type Violation struct {
	Constraint string `json:"constraint"`
	Count      int    `json:"count"`
	Weight     int    `json:"weight"`
}

// ScoredCandidate is a syllabified reading with its penalty. Selected marks
// readings inside the tolerance band of the best one.
type ScoredCandidate struct {
	Phonemes   string      `json:"phonemes"`
	Penalty    int         `json:"penalty"`
	Selected   bool        `json:"selected"`
	Violations []Violation `json:"violations,omitempty"`
}

// WordExplanation is the full EVAL table for one orthographic word
type WordExplanation struct {
	Word       string            `json:"word"`
	Result     string            `json:"result"`
	Candidates []ScoredCandidate `json:"candidates"`
}
