package metrics

import (
	"fmt"
	"sort"
	"time"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
)

// BestSelling sums sold quantity per period bucket and ranks the buckets by
// quantity, highest first. Buckets are numbered without the year, so week 14
// of two different years lands in one bucket. Sales without a date are
// dropped. Equal quantities keep ascending bucket order.
func BestSelling(sales []domain.SalesRecord, period domain.Period) []domain.PeriodTotal {
	if !period.Valid() {
		return []domain.PeriodTotal{}
	}

	sums := make(map[int]float64)
	for _, s := range sales {
		if !s.EntryDate.Valid() {
			continue
		}
		sums[bucketOf(s.EntryDate, period)] += s.Quantity
	}

	out := make([]domain.PeriodTotal, 0, len(sums))
	for bucket, qty := range sums {
		out = append(out, domain.PeriodTotal{
			Bucket:   bucket,
			Label:    bucketLabel(bucket, period),
			Quantity: qty,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	return out
}

func bucketOf(d domain.CalendarDate, period domain.Period) int {
	switch period {
	case domain.PeriodMonthly:
		return d.Month()
	case domain.PeriodQuarterly:
		return d.Quarter()
	default:
		return d.ISOWeek()
	}
}

func bucketLabel(bucket int, period domain.Period) string {
	switch period {
	case domain.PeriodMonthly:
		return time.Month(bucket).String()
	case domain.PeriodQuarterly:
		return fmt.Sprintf("Q%d", bucket)
	default:
		return fmt.Sprintf("Week %d", bucket)
	}
}
