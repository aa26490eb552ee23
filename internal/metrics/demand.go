package metrics

import (
	"math"
	"sort"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
)

// Quantile returns the q-th quantile of values using linear interpolation
// between closest ranks. It is not applicable for an empty input or a q
// outside [0, 1].
func Quantile(values []float64, q float64) domain.NullableFloat {
	if len(values) == 0 || q < 0 || q > 1 || math.IsNaN(q) {
		return domain.NotApplicable()
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return domain.Float(sorted[lo] + (sorted[hi]-sorted[lo])*frac)
}

// HighDemandProducts returns the joined stock rows whose stock is strictly
// above the q-th quantile of the full stock distribution, along with that
// quantile.
func HighDemandProducts(stock []domain.JoinedStock, q float64) ([]domain.JoinedStock, domain.NullableFloat) {
	cutoff := Quantile(stockValues(stock), q)
	if !cutoff.Valid {
		return []domain.JoinedStock{}, cutoff
	}

	out := make([]domain.JoinedStock, 0)
	for _, row := range stock {
		if row.Stock > cutoff.Value {
			out = append(out, row)
		}
	}
	return out, cutoff
}
