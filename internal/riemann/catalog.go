package riemann

import (
	"math"
	"strings"
)

// Function pairs an integrand with its antiderivative.
type Function struct {
	Name           string
	Expr           string
	F              func(float64) float64
	Antiderivative func(float64) float64
	DefaultA       float64
	DefaultB       float64
}

var catalog = []Function{
	{
		Name:           "square",
		Expr:           "f(x) = x²",
		F:              func(x float64) float64 { return x * x },
		Antiderivative: func(x float64) float64 { return x * x * x / 3 },
		DefaultB:       5,
	},
	{
		Name:           "sin",
		Expr:           "f(x) = sin(x)",
		F:              math.Sin,
		Antiderivative: func(x float64) float64 { return -math.Cos(x) },
		DefaultB:       5,
	},
	{
		Name: "cubic",
		Expr: "f(x) = x³ - 2x² + 5",
		F:    func(x float64) float64 { return x*x*x - 2*x*x + 5 },
		Antiderivative: func(x float64) float64 {
			return math.Pow(x, 4)/4 - 2*math.Pow(x, 3)/3 + 5*x
		},
		DefaultB: 5,
	},
	{
		Name:           "exp",
		Expr:           "f(x) = e^x",
		F:              math.Exp,
		Antiderivative: math.Exp,
		DefaultB:       5,
	},
	{
		Name:           "reciprocal",
		Expr:           "f(x) = 1/x",
		F:              func(x float64) float64 { return 1 / x },
		Antiderivative: math.Log,
		DefaultA:       0.1,
		DefaultB:       5,
	},
}

// Functions returns the catalog in display order.
func Functions() []Function {
	out := make([]Function, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a catalog function by name, case-insensitively.
func Lookup(name string) (Function, error) {
	for _, fn := range catalog {
		if strings.EqualFold(fn.Name, strings.TrimSpace(name)) {
			return fn, nil
		}
	}
	return Function{}, &ValidationError{Field: "function", Value: name, Reason: "not in the catalog"}
}
