package domain

// ProductMetrics is the per-row projection derived from a joined stock row.
// SoldPercentage is measured against the global sales total, not the
// product's own sales.
type ProductMetrics struct {
	ProductKey      string        `json:"product_key"`
	Size            string        `json:"size"`
	StockOnHand     float64       `json:"stock_on_hand"`
	EntryDate       CalendarDate  `json:"entry_date"`
	SoldPercentage  NullableFloat `json:"sold_percentage"`
	DaysToSellOut   NullableFloat `json:"days_to_sell_out"`
	Age             NullableFloat `json:"age"`
	IsHighDemand    bool          `json:"is_high_demand"`
	CumulativeShare NullableFloat `json:"cumulative_share"`
	CumulativeRank  int           `json:"cumulative_rank,omitempty"`
}

// Totals holds the overview scalars.
type Totals struct {
	TotalStock     float64       `json:"total_stock"`
	TotalSales     float64       `json:"total_sales"`
	SoldPercentage NullableFloat `json:"sold_percentage"`
}

// Period is the bucket width for best-seller rankings.
type Period string

const (
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly:
		return true
	}
	return false
}

// PeriodTotal is one bucket of a best-seller ranking.
type PeriodTotal struct {
	Bucket   int     `json:"bucket"`
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
}

// NonMovingProduct is a stock row with no matching sales.
type NonMovingProduct struct {
	JoinedStock
	Age NullableFloat `json:"age"`
}

// VendorTotal is a summed quantity per vendor.
type VendorTotal struct {
	Vendor   string  `json:"vendor"`
	Quantity float64 `json:"quantity"`
}

// ProductShare is one product of a cumulative-share ranking.
type ProductShare struct {
	Rank            int     `json:"rank"`
	ProductKey      string  `json:"product_key"`
	Quantity        float64 `json:"quantity"`
	Share           float64 `json:"share"`
	CumulativeShare float64 `json:"cumulative_share"`
}
