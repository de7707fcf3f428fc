package analytics

import (
	"sort"

	"github.com/spacesedan/evalflow/internal/models"
)

// LabelDistribution counts the labels of one result column in scale order.
// Labels outside the scale and levels with no rows are left out.
func LabelDistribution(records []models.RecodedRecord, field int) []models.LabelCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Source.Results[field]]++
	}

	out := make([]models.LabelCount, 0, len(models.LabelOrder))
	for _, label := range models.LabelOrder {
		if c := counts[label]; c > 0 {
			out = append(out, models.LabelCount{Label: label, Count: c})
		}
	}
	return out
}

// SentimentCounts tallies tagged observations over all fields. Neutral ones
// are not counted.
func SentimentCounts(records []models.RecodedRecord) models.SentimentSummary {
	var sum models.SentimentSummary
	for _, r := range records {
		for _, o := range r.Observations {
			switch o.Tag {
			case models.SentimentPositive:
				sum.Positive++
			case models.SentimentNegative:
				sum.Negative++
			}
		}
	}
	if total := sum.Positive + sum.Negative; total > 0 {
		rate := float64(sum.Positive) / float64(total)
		sum.PositiveRate = &rate
	}
	return sum
}

// CrossTab counts positive and negative observations of one field per label
// of the matching result column. Rows follow scale order; labels outside the
// scale come after, alphabetically.
func CrossTab(records []models.RecodedRecord, field int) []models.CrossTabRow {
	rows := make(map[string]*models.CrossTabRow)
	for _, r := range records {
		label := r.Source.Results[field]
		tag := r.Observations[field].Tag
		if label == "" || tag == models.SentimentNeutral {
			continue
		}
		row, ok := rows[label]
		if !ok {
			row = &models.CrossTabRow{Label: label}
			rows[label] = row
		}
		if tag == models.SentimentPositive {
			row.Positive++
		} else {
			row.Negative++
		}
	}
	return orderedRows(rows)
}

// CompareResults counts labels per result column.
func CompareResults(records []models.RecodedRecord) []models.FieldComparison {
	out := make([]models.FieldComparison, models.ResultFields)
	for i := 0; i < models.ResultFields; i++ {
		out[i] = models.FieldComparison{Field: models.ResultColumns[i], Counts: make(map[string]int)}
		for _, r := range records {
			if label := r.Source.Results[i]; label != "" {
				out[i].Counts[label]++
			}
		}
	}
	return out
}

// CompareSentiment counts positive and negative tags per observation column.
func CompareSentiment(records []models.RecodedRecord) []models.FieldComparison {
	out := make([]models.FieldComparison, models.ResultFields)
	for i := 0; i < models.ResultFields; i++ {
		out[i] = models.FieldComparison{Field: models.ObservationColumns[i], Counts: make(map[string]int)}
		for _, r := range records {
			if tag := r.Observations[i].Tag; tag != models.SentimentNeutral {
				out[i].Counts[string(tag)]++
			}
		}
	}
	return out
}

func orderedRows(rows map[string]*models.CrossTabRow) []models.CrossTabRow {
	out := make([]models.CrossTabRow, 0, len(rows))
	for _, label := range models.LabelOrder {
		if row, ok := rows[label]; ok {
			out = append(out, *row)
			delete(rows, label)
		}
	}

	rest := make([]string, 0, len(rows))
	for label := range rows {
		rest = append(rest, label)
	}
	sort.Strings(rest)
	for _, label := range rest {
		out = append(out, *rows[label])
	}
	return out
}
