package riemann

import (
	"math"
	"strings"

	"github.com/spacesedan/evalflow/internal/models"
)

const DefaultCurvePoints = 500

// ParseRule accepts the rule names in English or Spanish.
func ParseRule(s string) (models.SamplingRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "izquierda":
		return models.RuleLeft, nil
	case "right", "derecha":
		return models.RuleRight, nil
	case "midpoint", "mid", "punto medio":
		return models.RuleMidpoint, nil
	default:
		return "", &ValidationError{Field: "rule", Value: s, Reason: "expected left, right or midpoint"}
	}
}

// Approximate computes a uniform Riemann sum of fn over [a, b] and compares it
// with the exact area F(b) - F(a). It either returns a complete result or an
// error; nothing partial.
func Approximate(fn Function, a, b float64, n int, rule models.SamplingRule) (models.RiemannApproximation, error) {
	if err := validate(a, b, n, rule); err != nil {
		return models.RiemannApproximation{}, err
	}

	fa, fb := fn.Antiderivative(a), fn.Antiderivative(b)
	if !finite(fa) {
		return models.RiemannApproximation{}, &DomainError{Function: fn.Expr, Name: "a", Point: a}
	}
	if !finite(fb) {
		return models.RiemannApproximation{}, &DomainError{Function: fn.Expr, Name: "b", Point: b}
	}

	dx := (b - a) / float64(n)
	bounds := Partition(a, b, n)
	points := SamplePoints(bounds, rule)

	heights := make([]float64, n)
	var area float64
	for i, x := range points {
		y := fn.F(x)
		if !finite(y) {
			return models.RiemannApproximation{}, &DomainError{Function: fn.Expr, Name: "sample", Point: x}
		}
		heights[i] = y
		area += y * dx
	}

	exact := fb - fa
	absErr := math.Abs(exact - area)

	res := models.RiemannApproximation{
		Function:      fn.Name,
		A:             a,
		B:             b,
		N:             n,
		Rule:          rule,
		DeltaX:        dx,
		Boundaries:    bounds,
		SamplePoints:  points,
		Heights:       heights,
		Approximate:   area,
		Exact:         exact,
		AbsoluteError: absErr,
	}
	if exact != 0 {
		pct := 100 * absErr / math.Abs(exact)
		res.RelativeErrorPct = &pct
	}
	return res, nil
}

// Partition returns the n+1 equally spaced boundaries of [a, b]. The last one
// is exactly b.
func Partition(a, b float64, n int) []float64 {
	bounds := make([]float64, n+1)
	step := (b - a) / float64(n)
	for i := 0; i < n; i++ {
		bounds[i] = a + float64(i)*step
	}
	bounds[n] = b
	return bounds
}

// SamplePoints picks one evaluation point per subinterval of bounds.
func SamplePoints(bounds []float64, rule models.SamplingRule) []float64 {
	n := len(bounds) - 1
	if n < 1 {
		return nil
	}
	points := make([]float64, n)
	for i := 0; i < n; i++ {
		switch rule {
		case models.RuleRight:
			points[i] = bounds[i+1]
		case models.RuleMidpoint:
			points[i] = (bounds[i] + bounds[i+1]) / 2
		default:
			points[i] = bounds[i]
		}
	}
	return points
}

// Curve samples fn at evenly spaced points over [a, b] for plotting. Points
// where fn is not finite are skipped.
func Curve(fn Function, a, b float64, points int) []models.CurvePoint {
	if points < 2 || !(a < b) {
		return nil
	}
	xs := Partition(a, b, points-1)
	out := make([]models.CurvePoint, 0, len(xs))
	for _, x := range xs {
		y := fn.F(x)
		if !finite(y) {
			continue
		}
		out = append(out, models.CurvePoint{X: x, Y: y})
	}
	return out
}

func validate(a, b float64, n int, rule models.SamplingRule) error {
	if !finite(a) {
		return &ValidationError{Field: "a", Value: a, Reason: "bound must be finite"}
	}
	if !finite(b) {
		return &ValidationError{Field: "b", Value: b, Reason: "bound must be finite"}
	}
	if a >= b {
		return &ValidationError{Field: "a", Value: a, Reason: "lower bound must be less than b"}
	}
	if n < 1 {
		return &ValidationError{Field: "n", Value: n, Reason: "at least one subinterval is required"}
	}
	switch rule {
	case models.RuleLeft, models.RuleRight, models.RuleMidpoint:
	default:
		return &ValidationError{Field: "rule", Value: rule, Reason: "expected left, right or midpoint"}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
