package domain

// TableKind names one of the three input record sets.
type TableKind string

const (
	TablePurchases TableKind = "purchases"
	TableSales     TableKind = "sales"
	TableStock     TableKind = "stock"
)

// TableKinds lists the input tables in load order.
func TableKinds() []TableKind {
	return []TableKind{TablePurchases, TableSales, TableStock}
}

// RawTable is a header plus string cells, as delivered by a record source
// before any column resolution or type coercion.
type RawTable struct {
	Kind   TableKind
	Origin string
	Header []string
	Rows   [][]string
}
