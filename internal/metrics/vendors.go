package metrics

import (
	"sort"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
)

// RejectedGoodsByVendor sums quantity per vendor over purchases with a zero
// amount. A blank vendor is grouped like any other name.
func RejectedGoodsByVendor(purchases []domain.PurchaseRecord) []domain.VendorTotal {
	return sumByVendor(purchases, domain.PurchaseRecord.IsRejected)
}

// ReturnsByVendor sums quantity per vendor over purchases with a negative
// quantity. Totals are therefore negative.
func ReturnsByVendor(purchases []domain.PurchaseRecord) []domain.VendorTotal {
	return sumByVendor(purchases, domain.PurchaseRecord.IsReturn)
}

func sumByVendor(purchases []domain.PurchaseRecord, keep func(domain.PurchaseRecord) bool) []domain.VendorTotal {
	sums := make(map[string]float64)
	for _, p := range purchases {
		if keep(p) {
			sums[p.Vendor] += p.Quantity
		}
	}

	out := make([]domain.VendorTotal, 0, len(sums))
	for vendor, qty := range sums {
		out = append(out, domain.VendorTotal{Vendor: vendor, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Vendor < out[j].Vendor })
	return out
}
