package report

import (
	"io"

	"github.com/spacesedan/evalflow/internal/models"
)

func SalesKPIs(w io.Writer, k models.SalesKPIs) {
	Title(w, "Sales overview")
	avg := "n/a"
	if k.HasOrders {
		avg = money(k.AverageOrder)
	}
	table := newTable(w, "Total sales", "Total profit", "Orders", "Average order")
	table.Append([]string{money(k.TotalSales), money(k.TotalProfit), count(k.Orders), avg})
	table.Render()
}

func SalesBuckets(w io.Writer, title, keyHeader string, buckets []models.SalesBucket) {
	Title(w, "%s", title)
	table := newTable(w, keyHeader, "Sales", "Profit", "Orders")
	for _, b := range buckets {
		table.Append([]string{b.Key, money(b.Sales), money(b.Profit), count(b.Orders)})
	}
	table.Render()
}
