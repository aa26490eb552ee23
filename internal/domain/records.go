package domain

import "time"

// PurchaseRecord is one line of the purchase ledger.
type PurchaseRecord struct {
	EntryID   string       `json:"entry_id"`
	EntryDate CalendarDate `json:"entry_date"`
	Vendor    string       `json:"vendor"`
	Quantity  float64      `json:"quantity"`
	Amount    float64      `json:"amount"`
	SaleQty   float64      `json:"sale_qty"`
}

// IsRejected reports whether the line is a zero-amount (rejected) receipt.
func (p PurchaseRecord) IsRejected() bool { return p.Amount == 0 }

// IsReturn reports whether the line carries a negative quantity.
func (p PurchaseRecord) IsReturn() bool { return p.Quantity < 0 }

// SalesRecord is one line of the sales ledger. Brand is the key stock rows
// are matched against.
type SalesRecord struct {
	EntryDate CalendarDate `json:"entry_date"`
	Brand     string       `json:"brand"`
	Quantity  float64      `json:"quantity"`
}

// StockRecord is one line of the stock-on-hand snapshot.
type StockRecord struct {
	NameToDisplay string  `json:"name_to_display"`
	Size          string  `json:"size"`
	Stock         float64 `json:"stock"`
}

// JoinedStock is a stock row left-joined to the purchase whose entry id
// equals the stock row's NameToDisplay. Unmatched rows have no EntryID and an
// invalid EntryDate.
type JoinedStock struct {
	StockRecord
	EntryID   string       `json:"entry_id,omitempty"`
	EntryDate CalendarDate `json:"entry_date"`
	Matched   bool         `json:"matched"`
}

// Dataset is the loaded, joined input. It is never mutated after load.
type Dataset struct {
	Purchases   []PurchaseRecord `json:"-"`
	Sales       []SalesRecord    `json:"-"`
	StockOnHand []StockRecord    `json:"-"`
	Stock       []JoinedStock    `json:"-"`
	LoadedAt    time.Time        `json:"loaded_at"`
}

// DatasetInfo summarises a loaded dataset.
type DatasetInfo struct {
	Purchases   int       `json:"purchases"`
	Sales       int       `json:"sales"`
	StockOnHand int       `json:"stock_on_hand"`
	JoinedStock int       `json:"joined_stock"`
	LoadedAt    time.Time `json:"loaded_at"`
}

func (d *Dataset) Info() DatasetInfo {
	return DatasetInfo{
		Purchases:   len(d.Purchases),
		Sales:       len(d.Sales),
		StockOnHand: len(d.StockOnHand),
		JoinedStock: len(d.Stock),
		LoadedAt:    d.LoadedAt,
	}
}
