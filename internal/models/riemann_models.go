package models

type SamplingRule string

const (
	RuleLeft     SamplingRule = "left"
	RuleRight    SamplingRule = "right"
	RuleMidpoint SamplingRule = "midpoint"
)

// RiemannApproximation is the full result of one Riemann sum run. It is
// recomputed from scratch whenever any input changes.
type RiemannApproximation struct {
	Function string       `json:"function"`
	A        float64      `json:"a"`
	B        float64      `json:"b"`
	N        int          `json:"n"`
	Rule     SamplingRule `json:"rule"`

	DeltaX       float64   `json:"delta_x"`
	Boundaries   []float64 `json:"boundaries"`
	SamplePoints []float64 `json:"sample_points"`
	Heights      []float64 `json:"heights"`

	Approximate   float64 `json:"approximate"`
	Exact         float64 `json:"exact"`
	AbsoluteError float64 `json:"absolute_error"`
	// RelativeErrorPct is nil when the exact area is zero.
	RelativeErrorPct *float64 `json:"relative_error_pct"`
}

type CurvePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
