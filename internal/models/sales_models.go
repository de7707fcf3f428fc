package models

import "time"

// Column names of the sales sheet.
const (
	ColumnDate     = "Fecha"
	ColumnCategory = "Categoría"
	ColumnRegion   = "Región"
	ColumnSales    = "Ventas"
	ColumnQuantity = "Cantidad"
	ColumnProfit   = "Beneficio"
)

type Sale struct {
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Region   string    `json:"region"`
	Sales    float64   `json:"sales"`
	Quantity int       `json:"quantity"`
	Profit   float64   `json:"profit"`
}

type SalesKPIs struct {
	TotalSales  float64 `json:"total_sales"`
	TotalProfit float64 `json:"total_profit"`
	Orders      int     `json:"orders"`
	// AverageOrder is only meaningful when HasOrders is true.
	AverageOrder float64 `json:"average_order"`
	HasOrders    bool    `json:"has_orders"`
}

// SalesBucket is one aggregated group: a region, a category or a month.
type SalesBucket struct {
	Key    string  `json:"key"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
	Orders int     `json:"orders"`
}
