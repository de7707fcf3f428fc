package main

import (
	"fmt"
	"io"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/spacesedan/evalflow/internal/models"
	"github.com/spacesedan/evalflow/internal/report"
	"github.com/spacesedan/evalflow/internal/sales"
	"github.com/spacesedan/evalflow/internal/session"
)

type salesOutput struct {
	KPIs       models.SalesKPIs     `json:"kpis"`
	ByRegion   []models.SalesBucket `json:"by_region"`
	ByCategory []models.SalesBucket `json:"by_category"`
	Monthly    []models.SalesBucket `json:"monthly"`
}

func newSalesCmd(a *app) *cobra.Command {
	var (
		file       string
		from       string
		to         string
		regions    []string
		categories []string
	)
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Sales KPIs by region, category and month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := session.New()
			sess.Sales = sales.Filter{Regions: regions, Categories: categories}

			var err error
			if sess.Sales.From, err = parseDay("from", from); err != nil {
				return err
			}
			if sess.Sales.To, err = parseDay("to", to); err != nil {
				return err
			}

			if file == "" {
				file = a.settings.SalesDataPath
			}
			all, err := a.loadSales(cmd.Context(), file)
			if err != nil {
				return err
			}

			selected := sess.SelectedSales(all)
			out := salesOutput{
				KPIs:       sales.KPIs(selected),
				ByRegion:   sales.ByRegion(selected),
				ByCategory: sales.ByCategory(selected),
				Monthly:    sales.Monthly(selected),
			}
			return a.render(cmd, out, func(w io.Writer) {
				if len(selected) == 0 {
					report.Warn(w, "No sales match the selected filters")
					return
				}
				if first, last, ok := sales.DateRange(selected); ok {
					report.Note(w, "%s to %s", first.Format(time.DateOnly), last.Format(time.DateOnly))
				}
				report.SalesKPIs(w, out.KPIs)
				report.SalesBuckets(w, "Sales by region", "Region", out.ByRegion)
				report.SalesBuckets(w, "Sales by category", "Category", out.ByCategory)
				report.SalesBuckets(w, "Monthly sales", "Month", out.Monthly)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "sales sheet (.csv or .xlsx); defaults to SALES_DATA_PATH")
	cmd.Flags().StringVar(&from, "from", "", "first day to include")
	cmd.Flags().StringVar(&to, "to", "", "last day to include")
	cmd.Flags().StringSliceVar(&regions, "region", nil, "only include these regions")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "only include these categories")
	return cmd
}

func parseDay(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("[CLI] --%s: %w", flag, err)
	}
	return t, nil
}
