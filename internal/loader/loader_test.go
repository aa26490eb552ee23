package loader

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySource struct {
	tables map[domain.TableKind]*domain.RawTable
	calls  atomic.Int32
	err    error
}

func (m *memorySource) Name() string { return "memory" }

func (m *memorySource) Fetch(ctx context.Context, kind domain.TableKind) (*domain.RawTable, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.tables[kind]
	if !ok {
		return nil, domain.ErrSourceNotAvailable
	}
	return t, nil
}

func table(kind domain.TableKind, header []string, rows ...[]string) *domain.RawTable {
	return &domain.RawTable{Kind: kind, Origin: string(kind) + ".csv", Header: header, Rows: rows}
}

func fixtureSource() *memorySource {
	return &memorySource{tables: map[domain.TableKind]*domain.RawTable{
		domain.TablePurchases: table(domain.TablePurchases,
			[]string{"Entry No.", "Entry Date", "Vendor", "Qty(Unit1)", "Amount"},
			[]string{"X", "03/04/2024", "V1", "5", "100"},
			[]string{"X", "10/04/2024", "V2", "3", "0"},
			[]string{"Y", "bogus", "V1", "1,000", "12.5"},
		),
		domain.TableSales: table(domain.TableSales,
			[]string{"Entry Date", "Brand", "Qty(Unit1)"},
			[]string{"05/04/2024", "X", "2"},
		),
		domain.TableStock: table(domain.TableStock,
			[]string{"NameToDisplay", "Size", "Stock(Unit1)"},
			[]string{"X", "M", "10"},
			[]string{"Z", "L", ""},
		),
	}}
}

func TestLoadParsesAndJoins(t *testing.T) {
	src := fixtureSource()
	ds, err := New(src).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Purchases, 3)
	assert.Equal(t, domain.NewCalendarDate(2024, time.April, 3), ds.Purchases[0].EntryDate)
	assert.False(t, ds.Purchases[2].EntryDate.Valid())
	assert.Equal(t, 1000.0, ds.Purchases[2].Quantity)

	require.Len(t, ds.StockOnHand, 2)
	assert.Equal(t, 0.0, ds.StockOnHand[1].Stock)

	// X fans out over its two purchases, Z stays unmatched.
	require.Len(t, ds.Stock, 3)
	assert.Equal(t, "04/03/2024", ds.Stock[0].EntryDate.Display())
	assert.Equal(t, "04/10/2024", ds.Stock[1].EntryDate.Display())
	assert.Equal(t, "Z", ds.Stock[2].NameToDisplay)
	assert.False(t, ds.Stock[2].Matched)
	assert.False(t, ds.Stock[2].EntryDate.Valid())
}

func TestLoadMissingColumnIsFatal(t *testing.T) {
	src := fixtureSource()
	src.tables[domain.TableSales] = table(domain.TableSales, []string{"Entry Date", "Qty(Unit1)"})

	_, err := New(src).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)
	assert.Contains(t, err.Error(), "Brand")
}

func TestLoadFetchErrorIsFatal(t *testing.T) {
	src := fixtureSource()
	src.err = errors.New("disk on fire")

	_, err := New(src).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestResolveColumnsIsLenient(t *testing.T) {
	tbl := table(domain.TableStock, []string{"name_to_display", " SIZE ", "stock unit1"})
	cols, err := resolveColumns(tbl, colName, colSize, colStock)
	require.NoError(t, err)
	assert.Equal(t, "Widget", cols.get([]string{"Widget", "M", "4"}, colName))
	assert.Equal(t, "4", cols.get([]string{"Widget", "M", "4"}, colStock))
	assert.Equal(t, "", cols.get([]string{"Widget"}, colStock))
}

func TestParseNumber(t *testing.T) {
	f, ok := parseNumber("1,234.5")
	assert.True(t, ok)
	assert.Equal(t, 1234.5, f)

	f, ok = parseNumber("")
	assert.True(t, ok)
	assert.Zero(t, f)

	f, ok = parseNumber("n/a")
	assert.False(t, ok)
	assert.Zero(t, f)

	f, ok = parseNumber("-3")
	assert.True(t, ok)
	assert.Equal(t, -3.0, f)
}

func TestJoinStockFanOut(t *testing.T) {
	d1 := domain.NewCalendarDate(2024, time.January, 1)
	d2 := domain.NewCalendarDate(2024, time.February, 1)
	joined := JoinStock(
		[]domain.StockRecord{{NameToDisplay: "X", Stock: 4}},
		[]domain.PurchaseRecord{{EntryID: "X", EntryDate: d1}, {EntryID: "X", EntryDate: d2}},
	)

	require.Len(t, joined, 2)
	assert.Equal(t, d1, joined[0].EntryDate)
	assert.Equal(t, d2, joined[1].EntryDate)
	assert.Equal(t, 4.0, joined[1].Stock)
}

func TestJoinStockEmpty(t *testing.T) {
	assert.Empty(t, JoinStock(nil, nil))
}

func TestCacheLoadsOnce(t *testing.T) {
	src := fixtureSource()
	cache := NewCache(New(src))

	first, err := cache.Dataset(context.Background())
	require.NoError(t, err)
	second, err := cache.Dataset(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(3), src.calls.Load())
}

func TestCacheKeepsError(t *testing.T) {
	src := fixtureSource()
	src.err = errors.New("unreachable")
	cache := NewCache(New(src))

	_, err := cache.Dataset(context.Background())
	require.Error(t, err)

	src.err = nil
	_, err = cache.Dataset(context.Background())
	assert.Error(t, err)
}
