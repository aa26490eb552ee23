package views

import (
	"fmt"
	"strconv"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/andresuchdata/inventory-dashboard/internal/metrics"
)

const (
	colName       = "NameToDisplay"
	colSize       = "Size"
	colStock      = "Stock(Unit1)"
	colQty        = "Qty(Unit1)"
	colEntryNo    = "Entry No."
	colEntryDate  = "Entry Date"
	colVendor     = "Vendor"
	colSoldPct    = "Sold Percentage"
	colDaysToSell = "Days to Sell Out"
	colAge        = "Age"
)

func overview(ds *domain.Dataset, p Params) *domain.Report {
	totals := metrics.ComputeTotals(ds)
	rows := metrics.BuildProductMetrics(ds, p.Now)
	top, mid := metrics.ThresholdBuckets(rows, p.LowPct, p.HighPct)

	return &domain.Report{
		Scalars: []domain.Scalar{
			{Label: "Total Stock", Value: domain.Float(totals.TotalStock), Display: formatNumber(totals.TotalStock, 2)},
			{Label: "Total Sales", Value: domain.Float(totals.TotalSales), Display: formatNumber(totals.TotalSales, 2)},
			{Label: "Sold Percentage", Value: totals.SoldPercentage, Display: formatPercent(totals.SoldPercentage)},
		},
		Tables: []domain.Table{
			productMetricsTable(fmt.Sprintf("Items Reaching %g%% Sold", p.HighPct), top),
			productMetricsTable(fmt.Sprintf("Items Reaching %g%% Sold", p.LowPct), mid),
		},
	}
}

func productMetricsTable(name string, rows []domain.ProductMetrics) domain.Table {
	t := domain.Table{
		Name:    name,
		Columns: []string{colName, colSize, colStock, colSoldPct, colDaysToSell},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.ProductKey,
			r.Size,
			formatNumber(r.StockOnHand, 2),
			formatPercent(r.SoldPercentage),
			formatNullable(r.DaysToSellOut, 2),
		})
	}
	return t
}

var periodColumn = map[domain.Period]string{
	domain.PeriodWeekly:    "Week",
	domain.PeriodMonthly:   "Month",
	domain.PeriodQuarterly: "Quarter",
}

func bestSelling(ds *domain.Dataset, p Params) *domain.Report {
	totals := metrics.BestSelling(ds.Sales, p.Period)

	series := domain.Series{Name: periodColumn[p.Period], Points: make([]domain.SeriesPoint, 0, len(totals))}
	table := domain.Table{
		Name:    "Best-Selling " + periodColumn[p.Period] + "s",
		Columns: []string{periodColumn[p.Period], colQty},
		Rows:    make([][]string, 0, len(totals)),
	}
	for _, t := range totals {
		series.Points = append(series.Points, domain.SeriesPoint{Key: t.Label, Value: t.Quantity})
		table.Rows = append(table.Rows, []string{t.Label, formatNumber(t.Quantity, 2)})
	}

	return &domain.Report{Tables: []domain.Table{table}, Series: []domain.Series{series}}
}

func nonMoving(ds *domain.Dataset, p Params) *domain.Report {
	products := metrics.NonMovingProducts(ds, p.Now)

	table := domain.Table{
		Name:    "Non-Moving Products",
		Columns: []string{colName, colSize, colStock, colEntryDate, colAge},
		Rows:    make([][]string, 0, len(products)),
	}
	for _, np := range products {
		table.Rows = append(table.Rows, []string{
			np.NameToDisplay,
			np.Size,
			formatNumber(np.Stock, 2),
			np.EntryDate.Display(),
			formatNullable(np.Age, 0),
		})
	}
	return &domain.Report{Tables: []domain.Table{table}}
}

func rejectedGoods(ds *domain.Dataset, _ Params) *domain.Report {
	return &domain.Report{Tables: []domain.Table{
		vendorTable("Rejected Goods by Vendor", metrics.RejectedGoodsByVendor(ds.Purchases)),
		vendorTable("Returns by Vendor", metrics.ReturnsByVendor(ds.Purchases)),
	}}
}

func vendorTable(name string, totals []domain.VendorTotal) domain.Table {
	t := domain.Table{
		Name:    name,
		Columns: []string{colVendor, colQty},
		Rows:    make([][]string, 0, len(totals)),
	}
	for _, v := range totals {
		t.Rows = append(t.Rows, []string{v.Vendor, formatNumber(v.Quantity, 2)})
	}
	return t
}

func onlineSales(ds *domain.Dataset, p Params) *domain.Report {
	rows, cutoff := metrics.HighDemandProducts(ds.Stock, p.Quantile)

	return &domain.Report{
		Scalars: []domain.Scalar{{
			Label:   fmt.Sprintf("Stock Quantile (%g)", p.Quantile),
			Value:   cutoff,
			Display: formatNullable(cutoff, 2),
		}},
		Tables: []domain.Table{joinedStockTable("High-Demand Products", rows)},
	}
}

func uniqueProducts(ds *domain.Dataset, _ Params) *domain.Report {
	return &domain.Report{Tables: []domain.Table{
		joinedStockTable("Unique Products", metrics.UniqueProducts(ds)),
	}}
}

func joinedStockTable(name string, rows []domain.JoinedStock) domain.Table {
	t := domain.Table{
		Name:    name,
		Columns: []string{colName, colSize, colStock, colEntryNo, colEntryDate},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.NameToDisplay,
			r.Size,
			formatNumber(r.Stock, 2),
			r.EntryID,
			r.EntryDate.Display(),
		})
	}
	return t
}

func topProducts(ds *domain.Dataset, p Params) *domain.Report {
	shares := metrics.TopShareProducts(ds.Sales, p.Threshold)

	series := domain.Series{Name: "Brand", Points: make([]domain.SeriesPoint, 0, len(shares))}
	table := domain.Table{
		Name:    "Top " + formatNumber(p.Threshold*100, 2) + "% Products",
		Columns: []string{"Rank", "Brand", colQty, "Share", "Cumulative Share"},
		Rows:    make([][]string, 0, len(shares)),
	}
	for _, s := range shares {
		series.Points = append(series.Points, domain.SeriesPoint{Key: s.ProductKey, Value: s.Quantity})
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(s.Rank),
			s.ProductKey,
			formatNumber(s.Quantity, 2),
			formatShare(s.Share),
			formatShare(s.CumulativeShare),
		})
	}
	return &domain.Report{Tables: []domain.Table{table}, Series: []domain.Series{series}}
}
