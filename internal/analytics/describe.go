package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/spacesedan/evalflow/internal/models"
)

// Describe summarizes scores, leaving out the nil ones. With no valid score
// the result is flagged Insufficient rather than reporting a zero mean.
func Describe(scores []*int) models.ScoreStats {
	values := make([]float64, 0, len(scores))
	missing := 0
	for _, s := range scores {
		if s == nil {
			missing++
			continue
		}
		values = append(values, float64(*s))
	}

	st := models.ScoreStats{Count: len(values), Missing: missing}
	if len(values) == 0 {
		st.Insufficient = true
		return st
	}

	sort.Float64s(values)
	st.Mean = stat.Mean(values, nil)
	// Sample deviation; a single score has none and keeps Std at zero.
	if len(values) > 1 {
		st.Std = stat.StdDev(values, nil)
	}
	st.Min = floats.Min(values)
	st.Max = floats.Max(values)
	st.P25 = percentile(values, 0.25)
	st.Median = percentile(values, 0.50)
	st.P75 = percentile(values, 0.75)
	return st
}

// DescribeResults runs Describe over each result column.
func DescribeResults(records []models.RecodedRecord) [models.ResultFields]models.ScoreStats {
	var out [models.ResultFields]models.ScoreStats
	for i := 0; i < models.ResultFields; i++ {
		scores := make([]*int, len(records))
		for j, r := range records {
			scores[j] = r.Scores[i]
		}
		out[i] = Describe(scores)
	}
	return out
}

// percentile interpolates linearly between closest ranks over sorted values,
// placing p at rank (n-1)*p.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
