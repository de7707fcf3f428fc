package models

// ScoreStats describes one numeric result column. Missing counts the rows
// whose label had no numeric value; those rows are left out of every other
// figure. When Insufficient is set the remaining figures are zero.
type ScoreStats struct {
	Count        int     `json:"count"`
	Missing      int     `json:"missing"`
	Insufficient bool    `json:"insufficient"`
	Mean         float64 `json:"mean"`
	Std          float64 `json:"std"`
	Min          float64 `json:"min"`
	P25          float64 `json:"p25"`
	Median       float64 `json:"median"`
	P75          float64 `json:"p75"`
	Max          float64 `json:"max"`
}

type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type SentimentSummary struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	// PositiveRate is nil when there are no tagged observations.
	PositiveRate *float64 `json:"positive_rate"`
}

// CrossTabRow counts positive and negative observations for one label.
type CrossTabRow struct {
	Label    string `json:"label"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
}

// FieldComparison holds per-column counts, keyed by label or sentiment tag.
type FieldComparison struct {
	Field  string         `json:"field"`
	Counts map[string]int `json:"counts"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type LexicalAgreement struct {
	Compared int `json:"compared"`
	Agreed   int `json:"agreed"`
	// Rate is nil when nothing was compared.
	Rate *float64 `json:"rate"`
}
