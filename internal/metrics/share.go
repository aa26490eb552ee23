package metrics

import (
	"sort"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
)

// DefaultTopShareThreshold is the cumulative share cut-off of the top
// products view.
const DefaultTopShareThreshold = 0.20

// ProductRanking sums sales per Brand and ranks products by quantity,
// highest first, with each product's share of the total and the running
// cumulative share. Equal quantities keep ascending key order. A
// non-positive total yields no ranking.
func ProductRanking(sales []domain.SalesRecord) []domain.ProductShare {
	sums := make(map[string]float64)
	for _, s := range sales {
		sums[s.Brand] += s.Quantity
	}

	out := make([]domain.ProductShare, 0, len(sums))
	var total float64
	for key, qty := range sums {
		out = append(out, domain.ProductShare{ProductKey: key, Quantity: qty})
		total += qty
	}
	if total <= 0 {
		return []domain.ProductShare{}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ProductKey < out[j].ProductKey })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })

	var running float64
	for i := range out {
		running += out[i].Quantity
		out[i].Rank = i + 1
		out[i].Share = out[i].Quantity / total
		out[i].CumulativeShare = running / total
	}
	return out
}

// TopShareProducts returns the leading products of the ranking whose
// cumulative share stays within threshold. The first product over the
// threshold ends the set, so a leader holding more than threshold on its own
// yields an empty result.
func TopShareProducts(sales []domain.SalesRecord, threshold float64) []domain.ProductShare {
	ranking := ProductRanking(sales)

	out := make([]domain.ProductShare, 0)
	for _, p := range ranking {
		if p.CumulativeShare > threshold {
			break
		}
		out = append(out, p)
	}
	return out
}
