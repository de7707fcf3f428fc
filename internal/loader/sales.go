package loader

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/spacesedan/evalflow/internal/models"
)

var salesColumns = []string{
	models.ColumnDate,
	models.ColumnCategory,
	models.ColumnRegion,
	models.ColumnSales,
	models.ColumnQuantity,
	models.ColumnProfit,
}

// Sales parses a sales sheet. Missing columns and unparsable cells fail the
// whole table, naming the row (1-based, header excluded) and column.
func Sales(t Table) ([]models.Sale, error) {
	cols, missing := t.columns(salesColumns...)
	if len(missing) > 0 {
		return nil, fmt.Errorf("[Loader] sales sheet missing columns %s", strings.Join(missing, ", "))
	}

	out := make([]models.Sale, 0, len(t.Rows))
	for n, row := range t.Rows {
		line := n + 1

		date, err := dateparse.ParseIn(cell(row, cols[models.ColumnDate]), time.UTC)
		if err != nil {
			return nil, fmt.Errorf("[Loader] row %d column %s: %w", line, models.ColumnDate, err)
		}
		amount, err := parseNumber(cell(row, cols[models.ColumnSales]))
		if err != nil {
			return nil, fmt.Errorf("[Loader] row %d column %s: %w", line, models.ColumnSales, err)
		}
		profit, err := parseNumber(cell(row, cols[models.ColumnProfit]))
		if err != nil {
			return nil, fmt.Errorf("[Loader] row %d column %s: %w", line, models.ColumnProfit, err)
		}
		qty, err := strconv.Atoi(cell(row, cols[models.ColumnQuantity]))
		if err != nil {
			return nil, fmt.Errorf("[Loader] row %d column %s: %w", line, models.ColumnQuantity, err)
		}

		out = append(out, models.Sale{
			Date:     date,
			Category: cell(row, cols[models.ColumnCategory]),
			Region:   cell(row, cols[models.ColumnRegion]),
			Sales:    amount,
			Quantity: qty,
			Profit:   profit,
		})
	}

	slog.Debug("[Loader] Parsed sales sheet", slog.Int("rows", len(out)))
	return out, nil
}

// parseNumber accepts plain decimals and thousands separated by commas.
func parseNumber(s string) (float64, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(s, ",", ""), "$")
	return strconv.ParseFloat(s, 64)
}
