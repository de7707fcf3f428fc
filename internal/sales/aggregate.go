package sales

import (
	"sort"
	"time"

	"github.com/spacesedan/evalflow/internal/models"
)

const monthLayout = "2006-01"

// KPIs sums sales and profit. The average order value is only set when there
// is at least one order.
func KPIs(sales []models.Sale) models.SalesKPIs {
	var k models.SalesKPIs
	for _, s := range sales {
		k.TotalSales += s.Sales
		k.TotalProfit += s.Profit
	}
	k.Orders = len(sales)
	if k.Orders > 0 {
		k.HasOrders = true
		k.AverageOrder = k.TotalSales / float64(k.Orders)
	}
	return k
}

// ByRegion groups sales by region, largest total first.
func ByRegion(sales []models.Sale) []models.SalesBucket {
	buckets := group(sales, func(s models.Sale) string { return s.Region })
	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].Sales != buckets[j].Sales {
			return buckets[i].Sales > buckets[j].Sales
		}
		return buckets[i].Key < buckets[j].Key
	})
	return buckets
}

// ByCategory groups sales by category, sorted by name.
func ByCategory(sales []models.Sale) []models.SalesBucket {
	buckets := group(sales, func(s models.Sale) string { return s.Category })
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })
	return buckets
}

// Monthly groups sales into calendar months keyed "YYYY-MM", oldest first.
// Months between the first and the last sale that have no sales are
// emitted as zero buckets so the series has no gaps.
func Monthly(sales []models.Sale) []models.SalesBucket {
	if len(sales) == 0 {
		return nil
	}
	byMonth := make(map[string]models.SalesBucket)
	for _, b := range group(sales, func(s models.Sale) string { return s.Date.Format(monthLayout) }) {
		byMonth[b.Key] = b
	}

	first, last := monthStart(sales[0].Date), monthStart(sales[0].Date)
	for _, s := range sales[1:] {
		m := monthStart(s.Date)
		if m.Before(first) {
			first = m
		}
		if m.After(last) {
			last = m
		}
	}

	var buckets []models.SalesBucket
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		key := m.Format(monthLayout)
		b, ok := byMonth[key]
		if !ok {
			b = models.SalesBucket{Key: key}
		}
		buckets = append(buckets, b)
	}
	return buckets
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func group(sales []models.Sale, key func(models.Sale) string) []models.SalesBucket {
	index := make(map[string]int)
	var buckets []models.SalesBucket
	for _, s := range sales {
		k := key(s)
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, models.SalesBucket{Key: k})
		}
		buckets[i].Sales += s.Sales
		buckets[i].Profit += s.Profit
		buckets[i].Orders++
	}
	return buckets
}
