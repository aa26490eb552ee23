// Package metrics derives the dashboard figures from a loaded dataset. Every
// function is pure: it reads its inputs and returns a fresh result.
package metrics

import "github.com/andresuchdata/inventory-dashboard/internal/domain"

// TotalStock sums stock on hand over the joined stock table.
func TotalStock(stock []domain.JoinedStock) float64 {
	var total float64
	for _, s := range stock {
		total += s.Stock
	}
	return total
}

// TotalSales sums sold quantity over the sales ledger.
func TotalSales(sales []domain.SalesRecord) float64 {
	var total float64
	for _, s := range sales {
		total += s.Quantity
	}
	return total
}

// ComputeTotals returns total stock, total sales and sales as a percentage of
// stock. The percentage is not applicable when there is no stock.
//
// Totals are taken over the joined stock table, so stock rows fanned out by
// duplicate purchase ids count once per joined row.
func ComputeTotals(ds *domain.Dataset) domain.Totals {
	stock := TotalStock(ds.Stock)
	sales := TotalSales(ds.Sales)

	sold := domain.Ratio(sales, stock)
	if sold.Valid {
		sold.Value *= 100
	}

	return domain.Totals{
		TotalStock:     stock,
		TotalSales:     sales,
		SoldPercentage: sold,
	}
}
