package domain

import "time"

// Category is one entry of the reference taxonomy: a business category name
// with its NAICS industry code. The loaded set is unique by (Name, Code).
type Category struct {
	Name string `json:"Category"`
	Code string `json:"naic_category"`
}

// Impact describes one business category flagged by the classification stage
// as exposed to the reported market events.
type Impact struct {
	Category    string
	Code        string
	Commodities []string
	Assessment  string
}

// Classification is the validated outcome of the classification merge.
type Classification struct {
	Summary string
	Impacts []Impact
}

// RunRecord is the persisted summary of a completed run.
type RunRecord struct {
	ID         string
	Keywords   []string
	WindowDays int
	ItemCount  int
	Impacts    []Impact
	CreatedAt  time.Time
}
