package metrics

import (
	"time"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
)

// DefaultHighDemandQuantile is the stock quantile above which a product is
// prioritised for online sales.
const DefaultHighDemandQuantile = 0.75

// PerProductSoldPercentage returns (totalSales - stock) / totalSales * 100.
//
// The ratio is taken against the sales total of every product, not the
// product's own sales. This mirrors the figures the dashboard has always
// shown; it is not a per-product sell-through rate.
func PerProductSoldPercentage(totalSales, stock float64) domain.NullableFloat {
	pct := domain.Ratio(totalSales-stock, totalSales)
	if pct.Valid {
		pct.Value *= 100
	}
	return pct
}

// MeanSalesByBrand averages sold quantity per Brand.
func MeanSalesByBrand(sales []domain.SalesRecord) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, s := range sales {
		sums[s.Brand] += s.Quantity
		counts[s.Brand]++
	}

	means := make(map[string]float64, len(sums))
	for brand, sum := range sums {
		means[brand] = sum / float64(counts[brand])
	}
	return means
}

// DaysToSellOut divides stock on hand by the mean sales quantity of the sales
// group whose Brand equals productKey. Products without a sales group, or
// whose group averages zero, are not applicable.
//
// Stock is keyed by NameToDisplay and sales by Brand; the estimate is only
// meaningful where the two naming schemes coincide.
func DaysToSellOut(stock float64, productKey string, meanByBrand map[string]float64) domain.NullableFloat {
	mean, ok := meanByBrand[productKey]
	if !ok {
		return domain.NotApplicable()
	}
	return domain.Ratio(stock, mean)
}

// BuildProductMetrics projects every joined stock row into ProductMetrics.
func BuildProductMetrics(ds *domain.Dataset, now time.Time) []domain.ProductMetrics {
	if len(ds.Stock) == 0 {
		return []domain.ProductMetrics{}
	}

	totalSales := TotalSales(ds.Sales)
	means := MeanSalesByBrand(ds.Sales)
	sold := soldKeys(ds.Sales)
	cutoff := Quantile(stockValues(ds.Stock), DefaultHighDemandQuantile)

	ranks := make(map[string]domain.ProductShare)
	for _, share := range ProductRanking(ds.Sales) {
		ranks[share.ProductKey] = share
	}

	out := make([]domain.ProductMetrics, 0, len(ds.Stock))
	for _, row := range ds.Stock {
		m := domain.ProductMetrics{
			ProductKey:     row.NameToDisplay,
			Size:           row.Size,
			StockOnHand:    row.Stock,
			EntryDate:      row.EntryDate,
			SoldPercentage: PerProductSoldPercentage(totalSales, row.Stock),
			DaysToSellOut:  DaysToSellOut(row.Stock, row.NameToDisplay, means),
			IsHighDemand:   cutoff.Valid && row.Stock > cutoff.Value,
		}
		if _, moving := sold[row.NameToDisplay]; !moving {
			m.Age = row.EntryDate.DaysUntil(now)
		}
		if share, ok := ranks[row.NameToDisplay]; ok {
			m.CumulativeShare = domain.Float(share.CumulativeShare)
			m.CumulativeRank = share.Rank
		}
		out = append(out, m)
	}
	return out
}

// ThresholdBuckets splits rows by sold percentage into [high, +inf) and
// [low, high). Rows whose percentage is not applicable fall in neither.
func ThresholdBuckets(rows []domain.ProductMetrics, lowPct, highPct float64) (top, mid []domain.ProductMetrics) {
	top = make([]domain.ProductMetrics, 0)
	mid = make([]domain.ProductMetrics, 0)
	for _, r := range rows {
		if !r.SoldPercentage.Valid {
			continue
		}
		switch pct := r.SoldPercentage.Value; {
		case pct >= highPct:
			top = append(top, r)
		case pct >= lowPct:
			mid = append(mid, r)
		}
	}
	return top, mid
}

func soldKeys(sales []domain.SalesRecord) map[string]struct{} {
	keys := make(map[string]struct{}, len(sales))
	for _, s := range sales {
		keys[s.Brand] = struct{}{}
	}
	return keys
}

func stockValues(stock []domain.JoinedStock) []float64 {
	values := make([]float64, len(stock))
	for i, s := range stock {
		values[i] = s.Stock
	}
	return values
}
