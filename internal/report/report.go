package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	titleColor = color.New(color.FgYellow, color.Bold)
	warnColor  = color.New(color.FgRed)
	noteColor  = color.New(color.FgCyan)
)

// Title prints a section heading.
func Title(w io.Writer, format string, args ...any) {
	titleColor.Fprintf(w, "\n"+format+"\n", args...)
}

func Warn(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, format+"\n", args...)
}

func Note(w io.Writer, format string, args ...any) {
	noteColor.Fprintf(w, format+"\n", args...)
}

// JSON writes v indented, for piping into other tools.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("[Report] failed to encode JSON: %w", err)
	}
	return nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	return table
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

// percent formats a ratio in [0, 1]; nil reads as n/a.
func percent(rate *float64) string {
	if rate == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*rate*100, 'f', 1, 64) + "%"
}
