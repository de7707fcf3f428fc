package sales

import (
	"sort"
	"time"

	"github.com/spacesedan/evalflow/internal/models"
)

// Filter selects sales by calendar day range, region and category. Zero
// dates leave that side open; empty selections keep everything.
type Filter struct {
	From       time.Time
	To         time.Time
	Regions    []string
	Categories []string
}

// Apply returns the sales matching f, in input order. Both date ends are
// inclusive.
func (f Filter) Apply(sales []models.Sale) []models.Sale {
	regions := toSet(f.Regions)
	categories := toSet(f.Categories)
	from, to := day(f.From), day(f.To)

	out := make([]models.Sale, 0, len(sales))
	for _, s := range sales {
		d := day(s.Date)
		if !f.From.IsZero() && d.Before(from) {
			continue
		}
		if !f.To.IsZero() && d.After(to) {
			continue
		}
		if regions != nil && !regions[s.Region] {
			continue
		}
		if categories != nil && !categories[s.Category] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// DateRange returns the first and last sale dates.
func DateRange(sales []models.Sale) (time.Time, time.Time, bool) {
	if len(sales) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first, last := sales[0].Date, sales[0].Date
	for _, s := range sales[1:] {
		if s.Date.Before(first) {
			first = s.Date
		}
		if s.Date.After(last) {
			last = s.Date
		}
	}
	return first, last, true
}

// Regions returns the distinct regions, sorted.
func Regions(sales []models.Sale) []string {
	return distinct(sales, func(s models.Sale) string { return s.Region })
}

// Categories returns the distinct categories, sorted.
func Categories(sales []models.Sale) []string {
	return distinct(sales, func(s models.Sale) string { return s.Category })
}

func day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func distinct(sales []models.Sale, key func(models.Sale) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range sales {
		k := key(s)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
