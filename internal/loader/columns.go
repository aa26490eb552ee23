package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
)

var columnNameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "", "(", "", ")", "")

func normalizeColumnName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return columnNameSanitizer.Replace(name)
}

// column is a logical field with the header spellings that map to it.
type column struct {
	name     string
	aliases  []string
	required bool
}

var (
	colEntryID   = column{name: "Entry No.", aliases: []string{"entry no", "entry id", "entry number"}, required: true}
	colEntryDate = column{name: "Entry Date", aliases: []string{"date"}, required: true}
	colVendor    = column{name: "Vendor", aliases: []string{"supplier"}, required: true}
	colQty       = column{name: "Qty(Unit1)", aliases: []string{"qty unit1", "quantity"}, required: true}
	colAmount    = column{name: "Amount", required: true}
	colSaleQty   = column{name: "SALE QTY", aliases: []string{"sale quantity"}}
	colBrand     = column{name: "Brand", required: true}
	colName      = column{name: "NameToDisplay", aliases: []string{"name to display"}, required: true}
	colSize      = column{name: "Size", required: true}
	colStock     = column{name: "Stock(Unit1)", aliases: []string{"stock unit1"}, required: true}
)

// columnIndex maps logical columns to header positions.
type columnIndex struct {
	table *domain.RawTable
	index map[string]int
}

// resolveColumns locates every column in the table header. A missing required
// column is fatal; a missing optional column resolves to -1.
func resolveColumns(table *domain.RawTable, cols ...column) (*columnIndex, error) {
	positions := make(map[string]int, len(table.Header))
	for i, h := range table.Header {
		key := normalizeColumnName(h)
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	ci := &columnIndex{table: table, index: make(map[string]int, len(cols))}
	var missing []string
	for _, c := range cols {
		idx := -1
		for _, name := range append([]string{c.name}, c.aliases...) {
			if i, ok := positions[normalizeColumnName(name)]; ok {
				idx = i
				break
			}
		}
		if idx < 0 && c.required {
			missing = append(missing, c.name)
		}
		ci.index[c.name] = idx
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s table (%s) lacks %s",
			domain.ErrMissingColumn, table.Kind, table.Origin, strings.Join(missing, ", "))
	}
	return ci, nil
}

func (ci *columnIndex) get(record []string, c column) string {
	idx := ci.index[c.name]
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseNumber coerces a cell to float64. Blank cells are zero; the bool
// reports whether a non-blank cell failed to parse.
func parseNumber(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, true
	}
	v = strings.ReplaceAll(v, ",", "")
	v = strings.ReplaceAll(v, " ", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
