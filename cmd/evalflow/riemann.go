package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spacesedan/evalflow/internal/models"
	"github.com/spacesedan/evalflow/internal/report"
	"github.com/spacesedan/evalflow/internal/riemann"
	"github.com/spacesedan/evalflow/internal/session"
)

// Upper bounds for the interactive command; the core accepts any n >= 1.
const (
	maxSubintervals = 200
	maxCurvePoints  = 2000
)

type riemannOutput struct {
	Expression    string                      `json:"expression"`
	Approximation models.RiemannApproximation `json:"approximation"`
	Curve         []models.CurvePoint         `json:"curve,omitempty"`
}

func newRiemannCmd(a *app) *cobra.Command {
	var (
		function string
		lower    float64
		upper    float64
		n        int
		rule     string
		curve    int
	)
	cmd := &cobra.Command{
		Use:   "riemann",
		Short: "Approximate the area under a catalog function with a Riemann sum",
		Example: `  evalflow riemann --function sin --a 0 --b 3.14159 --n 20 --rule midpoint
  evalflow riemann --function reciprocal --json --curve 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n > maxSubintervals {
				return &riemann.ValidationError{Field: "n", Value: n, Reason: fmt.Sprintf("must be at most %d", maxSubintervals)}
			}
			if curve > maxCurvePoints {
				return &riemann.ValidationError{Field: "curve", Value: curve, Reason: fmt.Sprintf("must be at most %d", maxCurvePoints)}
			}
			sess := session.New()

			fn, err := riemann.Lookup(function)
			if err != nil {
				return err
			}
			r, err := riemann.ParseRule(rule)
			if err != nil {
				return err
			}

			sess.Riemann = session.RiemannParams{
				Function: fn.Name,
				A:        fn.DefaultA,
				B:        fn.DefaultB,
				N:        n,
				Rule:     r,
			}
			if cmd.Flags().Changed("a") {
				sess.Riemann.A = lower
			}
			if cmd.Flags().Changed("b") {
				sess.Riemann.B = upper
			}

			res, fn, err := sess.Approximation()
			if err != nil {
				return err
			}

			out := riemannOutput{Expression: fn.Expr, Approximation: res}
			if curve > 0 {
				out.Curve = riemann.Curve(fn, res.A, res.B, curve)
			}
			return a.render(cmd, out, func(w io.Writer) {
				report.Riemann(w, fn, res)
			})
		},
	}
	cmd.Flags().StringVar(&function, "function", "square", "catalog function, see 'evalflow functions'")
	cmd.Flags().Float64Var(&lower, "a", 0, "lower bound (default: the function's)")
	cmd.Flags().Float64Var(&upper, "b", 0, "upper bound (default: the function's)")
	cmd.Flags().IntVarP(&n, "n", "n", 10, "number of subintervals, at most 200")
	cmd.Flags().StringVar(&rule, "rule", string(models.RuleMidpoint), "left, right or midpoint")
	cmd.Flags().IntVar(&curve, "curve", 0, "with --json, also emit this many points of the curve")
	return cmd
}

func newFunctionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the functions available to riemann",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fns := riemann.Functions()
			type entry struct {
				Name     string  `json:"name"`
				Expr     string  `json:"expression"`
				DefaultA float64 `json:"default_a"`
				DefaultB float64 `json:"default_b"`
			}
			entries := make([]entry, len(fns))
			for i, fn := range fns {
				entries[i] = entry{Name: fn.Name, Expr: fn.Expr, DefaultA: fn.DefaultA, DefaultB: fn.DefaultB}
			}
			return a.render(cmd, entries, func(w io.Writer) {
				report.Functions(w, fns)
			})
		},
	}
}
