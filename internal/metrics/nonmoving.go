package metrics

import (
	"time"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
)

// NonMovingProducts returns the joined stock rows whose product key never
// appears as a Brand in sales, each with its age in whole days since the
// matched purchase date. Rows without a resolvable date have no age.
func NonMovingProducts(ds *domain.Dataset, now time.Time) []domain.NonMovingProduct {
	sold := soldKeys(ds.Sales)

	out := make([]domain.NonMovingProduct, 0)
	for _, row := range ds.Stock {
		if _, ok := sold[row.NameToDisplay]; ok {
			continue
		}
		out = append(out, domain.NonMovingProduct{
			JoinedStock: row,
			Age:         row.EntryDate.DaysUntil(now),
		})
	}
	return out
}

// UniqueProducts returns the joined stock rows that have never sold.
func UniqueProducts(ds *domain.Dataset) []domain.JoinedStock {
	sold := soldKeys(ds.Sales)

	out := make([]domain.JoinedStock, 0)
	for _, row := range ds.Stock {
		if _, ok := sold[row.NameToDisplay]; !ok {
			out = append(out, row)
		}
	}
	return out
}
