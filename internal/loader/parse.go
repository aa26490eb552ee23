package loader

import (
	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/rs/zerolog/log"
)

// coercion counts cells that could not be read as their declared type.
type coercion struct {
	kind    domain.TableKind
	numbers int
	dates   int
}

func (c *coercion) number(v string) float64 {
	f, ok := parseNumber(v)
	if !ok {
		c.numbers++
	}
	return f
}

func (c *coercion) date(v string) domain.CalendarDate {
	if v == "" {
		return domain.CalendarDate{}
	}
	d, err := domain.ParseDayFirst(v)
	if err != nil {
		c.dates++
		return domain.CalendarDate{}
	}
	return d
}

func (c *coercion) report() {
	if c.numbers == 0 && c.dates == 0 {
		return
	}
	log.Debug().
		Str("table", string(c.kind)).
		Int("unparsed_numbers", c.numbers).
		Int("unparsed_dates", c.dates).
		Msg("loader: coerced unreadable cells")
}

func parsePurchases(table *domain.RawTable) ([]domain.PurchaseRecord, error) {
	cols, err := resolveColumns(table, colEntryID, colEntryDate, colVendor, colQty, colAmount, colSaleQty)
	if err != nil {
		return nil, err
	}

	co := &coercion{kind: table.Kind}
	out := make([]domain.PurchaseRecord, 0, len(table.Rows))
	for _, record := range table.Rows {
		out = append(out, domain.PurchaseRecord{
			EntryID:   cols.get(record, colEntryID),
			EntryDate: co.date(cols.get(record, colEntryDate)),
			Vendor:    cols.get(record, colVendor),
			Quantity:  co.number(cols.get(record, colQty)),
			Amount:    co.number(cols.get(record, colAmount)),
			SaleQty:   co.number(cols.get(record, colSaleQty)),
		})
	}
	co.report()
	return out, nil
}

func parseSales(table *domain.RawTable) ([]domain.SalesRecord, error) {
	cols, err := resolveColumns(table, colEntryDate, colBrand, colQty)
	if err != nil {
		return nil, err
	}

	co := &coercion{kind: table.Kind}
	out := make([]domain.SalesRecord, 0, len(table.Rows))
	for _, record := range table.Rows {
		out = append(out, domain.SalesRecord{
			EntryDate: co.date(cols.get(record, colEntryDate)),
			Brand:     cols.get(record, colBrand),
			Quantity:  co.number(cols.get(record, colQty)),
		})
	}
	co.report()
	return out, nil
}

func parseStock(table *domain.RawTable) ([]domain.StockRecord, error) {
	cols, err := resolveColumns(table, colName, colSize, colStock)
	if err != nil {
		return nil, err
	}

	co := &coercion{kind: table.Kind}
	out := make([]domain.StockRecord, 0, len(table.Rows))
	for _, record := range table.Rows {
		out = append(out, domain.StockRecord{
			NameToDisplay: cols.get(record, colName),
			Size:          cols.get(record, colSize),
			Stock:         co.number(cols.get(record, colStock)),
		})
	}
	co.report()
	return out, nil
}
