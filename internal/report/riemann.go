package report

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/spacesedan/evalflow/internal/models"
	"github.com/spacesedan/evalflow/internal/riemann"
)

func Functions(w io.Writer, fns []riemann.Function) {
	table := newTable(w, "Name", "Expression", "Default a", "Default b")
	for _, fn := range fns {
		table.Append([]string{fn.Name, fn.Expr, number(fn.DefaultA), number(fn.DefaultB)})
	}
	table.Render()
}

// Riemann prints the rectangles of res followed by the comparison with the
// exact area.
func Riemann(w io.Writer, fn riemann.Function, res models.RiemannApproximation) {
	Title(w, "%s on [%g, %g], n=%d, %s rule", fn.Expr, res.A, res.B, res.N, res.Rule)

	table := newTable(w, "i", "Interval", "x*", "f(x*)", "Area")
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i := range res.Heights {
		table.Append([]string{
			strconv.Itoa(i + 1),
			"[" + formatFloat(res.Boundaries[i]) + ", " + formatFloat(res.Boundaries[i+1]) + "]",
			formatFloat(res.SamplePoints[i]),
			formatFloat(res.Heights[i]),
			formatFloat(res.Heights[i] * res.DeltaX),
		})
	}
	table.Render()

	summary := newTable(w, "Δx", "Approximate", "Exact", "Absolute error", "Relative error")
	summary.Append([]string{
		formatFloat(res.DeltaX),
		formatFloat(res.Approximate),
		formatFloat(res.Exact),
		formatFloat(res.AbsoluteError),
		relative(res.RelativeErrorPct),
	})
	summary.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func relative(pct *float64) string {
	if pct == nil {
		return "undefined"
	}
	return strconv.FormatFloat(*pct, 'f', 4, 64) + "%"
}
