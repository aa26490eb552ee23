package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) domain.CalendarDate {
	return domain.NewCalendarDate(y, m, d)
}

func stockRow(key string, stock float64, entry domain.CalendarDate) domain.JoinedStock {
	return domain.JoinedStock{
		StockRecord: domain.StockRecord{NameToDisplay: key, Stock: stock},
		EntryID:     key,
		EntryDate:   entry,
		Matched:     entry.Valid(),
	}
}

func sale(brand string, qty float64, d domain.CalendarDate) domain.SalesRecord {
	return domain.SalesRecord{Brand: brand, Quantity: qty, EntryDate: d}
}

func TestComputeTotals(t *testing.T) {
	ds := &domain.Dataset{
		Stock: []domain.JoinedStock{stockRow("A", 30, domain.CalendarDate{}), stockRow("B", 70, domain.CalendarDate{})},
		Sales: []domain.SalesRecord{sale("A", 20, domain.CalendarDate{}), sale("B", 5, domain.CalendarDate{})},
	}

	totals := ComputeTotals(ds)
	assert.Equal(t, 100.0, totals.TotalStock)
	assert.Equal(t, 25.0, totals.TotalSales)
	require.True(t, totals.SoldPercentage.Valid)
	assert.InDelta(t, 25.0, totals.SoldPercentage.Value, 1e-9)
}

func TestComputeTotalsZeroStock(t *testing.T) {
	totals := ComputeTotals(&domain.Dataset{Sales: []domain.SalesRecord{sale("A", 3, domain.CalendarDate{})}})
	assert.Zero(t, totals.TotalStock)
	assert.False(t, totals.SoldPercentage.Valid)
}

func TestPerProductSoldPercentageUsesGlobalTotal(t *testing.T) {
	pct := PerProductSoldPercentage(200, 50)
	require.True(t, pct.Valid)
	assert.InDelta(t, 75.0, pct.Value, 1e-9)

	assert.False(t, PerProductSoldPercentage(0, 10).Valid)
}

func TestDaysToSellOut(t *testing.T) {
	means := MeanSalesByBrand([]domain.SalesRecord{
		sale("A", 2, domain.CalendarDate{}),
		sale("A", 4, domain.CalendarDate{}),
		sale("Z", 0, domain.CalendarDate{}),
	})
	assert.Equal(t, 3.0, means["A"])

	days := DaysToSellOut(12, "A", means)
	require.True(t, days.Valid)
	assert.Equal(t, 4.0, days.Value)

	assert.False(t, DaysToSellOut(12, "missing", means).Valid)
	assert.False(t, DaysToSellOut(12, "Z", means).Valid)
}

func TestThresholdBucketsPartition(t *testing.T) {
	rows := []domain.ProductMetrics{
		{ProductKey: "a", SoldPercentage: domain.Float(100)},
		{ProductKey: "b", SoldPercentage: domain.Float(75)},
		{ProductKey: "c", SoldPercentage: domain.Float(74.9)},
		{ProductKey: "d", SoldPercentage: domain.Float(50)},
		{ProductKey: "e", SoldPercentage: domain.Float(49.9)},
		{ProductKey: "f", SoldPercentage: domain.NotApplicable()},
	}

	top, mid := ThresholdBuckets(rows, 50, 75)
	assert.Equal(t, []string{"a", "b"}, keys(top))
	assert.Equal(t, []string{"c", "d"}, keys(mid))

	var atLeastLow int
	for _, r := range rows {
		if r.SoldPercentage.Valid && r.SoldPercentage.Value >= 50 {
			atLeastLow++
		}
	}
	assert.Equal(t, atLeastLow, len(top)+len(mid))
}

func keys(rows []domain.ProductMetrics) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ProductKey
	}
	return out
}

func TestBestSellingWeekly(t *testing.T) {
	sales := []domain.SalesRecord{
		sale("A", 5, date(2024, time.April, 3)),     // week 14
		sale("B", 5, date(2024, time.April, 4)),     // week 14
		sale("A", 10, date(2024, time.January, 2)),  // week 1
		sale("C", 10, date(2024, time.February, 1)), // week 5
		sale("D", 99, domain.CalendarDate{}),
	}

	got := BestSelling(sales, domain.PeriodWeekly)
	require.Len(t, got, 3)
	assert.Equal(t, domain.PeriodTotal{Bucket: 1, Label: "Week 1", Quantity: 10}, got[0])
	assert.Equal(t, domain.PeriodTotal{Bucket: 5, Label: "Week 5", Quantity: 10}, got[1])
	assert.Equal(t, domain.PeriodTotal{Bucket: 14, Label: "Week 14", Quantity: 10}, got[2])
}

func TestBestSellingSortedDescending(t *testing.T) {
	sales := []domain.SalesRecord{
		sale("A", 1, date(2024, time.January, 15)),
		sale("A", 7, date(2024, time.May, 15)),
		sale("A", 3, date(2024, time.November, 15)),
	}

	monthly := BestSelling(sales, domain.PeriodMonthly)
	require.Len(t, monthly, 3)
	assert.Equal(t, "May", monthly[0].Label)
	for i := 1; i < len(monthly); i++ {
		assert.GreaterOrEqual(t, monthly[i-1].Quantity, monthly[i].Quantity)
	}

	quarterly := BestSelling(sales, domain.PeriodQuarterly)
	require.Len(t, quarterly, 3)
	assert.Equal(t, "Q2", quarterly[0].Label)
	assert.Equal(t, "Q4", quarterly[1].Label)
	assert.Equal(t, "Q1", quarterly[2].Label)
}

func TestBestSellingUnknownPeriod(t *testing.T) {
	assert.Empty(t, BestSelling([]domain.SalesRecord{sale("A", 1, date(2024, time.May, 1))}, "daily"))
}

func TestNonMovingProducts(t *testing.T) {
	now := time.Date(2024, time.April, 13, 18, 0, 0, 0, time.UTC)
	ds := &domain.Dataset{
		Stock: []domain.JoinedStock{
			stockRow("P1", 4, date(2024, time.April, 1)),
			stockRow("P2", 6, date(2024, time.April, 3)),
		},
		Sales: []domain.SalesRecord{sale("P1", 1, date(2024, time.April, 5))},
	}

	got := NonMovingProducts(ds, now)
	require.Len(t, got, 1)
	assert.Equal(t, "P2", got[0].NameToDisplay)
	require.True(t, got[0].Age.Valid)
	assert.Equal(t, 10.0, got[0].Age.Value)

	unique := UniqueProducts(ds)
	require.Len(t, unique, 1)
	assert.Equal(t, "P2", unique[0].NameToDisplay)
}

func TestNonMovingWithoutDateHasNoAge(t *testing.T) {
	ds := &domain.Dataset{Stock: []domain.JoinedStock{stockRow("P3", 1, domain.CalendarDate{})}}

	got := NonMovingProducts(ds, time.Now())
	require.Len(t, got, 1)
	assert.False(t, got[0].Age.Valid)
}

func TestRejectedGoodsByVendor(t *testing.T) {
	purchases := []domain.PurchaseRecord{
		{Vendor: "V", Quantity: 3, Amount: 0},
		{Vendor: "V", Quantity: 4, Amount: 0},
		{Vendor: "W", Quantity: 9, Amount: 12},
		{Vendor: "", Quantity: 1, Amount: 0},
	}

	got := RejectedGoodsByVendor(purchases)
	assert.Equal(t, []domain.VendorTotal{
		{Vendor: "", Quantity: 1},
		{Vendor: "V", Quantity: 7},
	}, got)
}

func TestReturnsByVendor(t *testing.T) {
	purchases := []domain.PurchaseRecord{
		{Vendor: "V", Quantity: -2, Amount: 10},
		{Vendor: "V", Quantity: 5, Amount: 10},
		{Vendor: "A", Quantity: -1, Amount: 0},
	}

	assert.Equal(t, []domain.VendorTotal{
		{Vendor: "A", Quantity: -1},
		{Vendor: "V", Quantity: -2},
	}, ReturnsByVendor(purchases))
}

func TestQuantile(t *testing.T) {
	q := Quantile([]float64{4, 1, 3, 2}, 0.75)
	require.True(t, q.Valid)
	assert.InDelta(t, 3.25, q.Value, 1e-9)

	assert.False(t, Quantile(nil, 0.5).Valid)
	assert.False(t, Quantile([]float64{1}, 1.5).Valid)
}

func TestHighDemandProducts(t *testing.T) {
	stock := []domain.JoinedStock{
		stockRow("a", 1, domain.CalendarDate{}),
		stockRow("b", 2, domain.CalendarDate{}),
		stockRow("c", 3, domain.CalendarDate{}),
		stockRow("d", 4, domain.CalendarDate{}),
	}

	got, cutoff := HighDemandProducts(stock, DefaultHighDemandQuantile)
	require.Len(t, got, 1)
	assert.Equal(t, "d", got[0].NameToDisplay)
	require.True(t, cutoff.Valid)
	assert.InDelta(t, 3.25, cutoff.Value, 1e-9)

	got, cutoff = HighDemandProducts(nil, 0.75)
	assert.Empty(t, got)
	assert.False(t, cutoff.Valid)

	got, _ = HighDemandProducts(stock, 2)
	assert.Empty(t, got)
}

func TestTopShareLeaderOverThresholdIsEmpty(t *testing.T) {
	sales := []domain.SalesRecord{
		sale("A", 50, domain.CalendarDate{}),
		sale("B", 30, domain.CalendarDate{}),
		sale("C", 20, domain.CalendarDate{}),
	}

	assert.Empty(t, TopShareProducts(sales, DefaultTopShareThreshold))
}

func TestTopShareLeadingPrefix(t *testing.T) {
	sales := []domain.SalesRecord{
		sale("C", 70, domain.CalendarDate{}),
		sale("A", 10, domain.CalendarDate{}),
		sale("B", 10, domain.CalendarDate{}),
		sale("D", 10, domain.CalendarDate{}),
	}

	// Ranked C, A, B, D: C alone already exceeds the threshold.
	assert.Empty(t, TopShareProducts(sales, 0.5))

	got := TopShareProducts(sales, 0.8)
	require.Len(t, got, 2)
	assert.Equal(t, "C", got[0].ProductKey)
	assert.Equal(t, "A", got[1].ProductKey)
	assert.Equal(t, 2, got[1].Rank)
	assert.InDelta(t, 0.8, got[1].CumulativeShare, 1e-9)
}

func TestTopShareEqualSellersHitThresholdExactly(t *testing.T) {
	equalSales := func(n int) []domain.SalesRecord {
		sales := make([]domain.SalesRecord, n)
		for i := range sales {
			sales[i] = sale(fmt.Sprintf("P%03d", i), 10, domain.CalendarDate{})
		}
		return sales
	}

	assert.Len(t, TopShareProducts(equalSales(10), 0.3), 3)
	assert.Len(t, TopShareProducts(equalSales(100), DefaultTopShareThreshold), 20)

	for _, n := range []int{55, 70, 80, 85, 95, 110} {
		got := TopShareProducts(equalSales(n), DefaultTopShareThreshold)
		want := n / 5
		assert.Len(t, got, want, "n=%d", n)
	}
}

func TestProductRankingCumulativeShareEndsAtOne(t *testing.T) {
	sales := []domain.SalesRecord{
		sale("A", 1, domain.CalendarDate{}),
		sale("B", 1, domain.CalendarDate{}),
		sale("C", 1, domain.CalendarDate{}),
	}

	ranking := ProductRanking(sales)
	require.Len(t, ranking, 3)
	assert.Equal(t, 1.0, ranking[2].CumulativeShare)
}

func TestProductRankingNonPositiveTotal(t *testing.T) {
	assert.Empty(t, ProductRanking([]domain.SalesRecord{sale("A", 0, domain.CalendarDate{})}))
	assert.Empty(t, ProductRanking(nil))
}

func TestBuildProductMetrics(t *testing.T) {
	now := time.Date(2024, time.April, 13, 0, 0, 0, 0, time.UTC)
	ds := &domain.Dataset{
		Stock: []domain.JoinedStock{
			stockRow("A", 10, date(2024, time.April, 1)),
			stockRow("B", 40, date(2024, time.April, 3)),
		},
		Sales: []domain.SalesRecord{
			sale("A", 50, date(2024, time.April, 5)),
			sale("A", 50, date(2024, time.April, 6)),
		},
	}

	got := BuildProductMetrics(ds, now)
	require.Len(t, got, 2)

	a := got[0]
	assert.InDelta(t, 90.0, a.SoldPercentage.Value, 1e-9)
	assert.InDelta(t, 0.2, a.DaysToSellOut.Value, 1e-9)
	assert.False(t, a.Age.Valid)
	assert.Equal(t, 1, a.CumulativeRank)
	assert.False(t, a.IsHighDemand)

	b := got[1]
	assert.InDelta(t, 60.0, b.SoldPercentage.Value, 1e-9)
	assert.False(t, b.DaysToSellOut.Valid)
	require.True(t, b.Age.Valid)
	assert.Equal(t, 10.0, b.Age.Value)
	assert.Zero(t, b.CumulativeRank)
	assert.True(t, b.IsHighDemand)
}

func TestEmptyDatasetYieldsEmptyResults(t *testing.T) {
	ds := &domain.Dataset{}
	now := time.Now()

	assert.Empty(t, BuildProductMetrics(ds, now))
	assert.Empty(t, NonMovingProducts(ds, now))
	assert.Empty(t, UniqueProducts(ds))
	assert.Empty(t, RejectedGoodsByVendor(ds.Purchases))
	assert.Empty(t, BestSelling(ds.Sales, domain.PeriodWeekly))
	assert.Empty(t, TopShareProducts(ds.Sales, DefaultTopShareThreshold))
	highDemand, _ := HighDemandProducts(ds.Stock, DefaultHighDemandQuantile)
	assert.Empty(t, highDemand)
}
