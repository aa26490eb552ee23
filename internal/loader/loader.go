package loader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/andresuchdata/inventory-dashboard/internal/source"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Loader reads the three input tables from a Source and builds a Dataset.
type Loader struct {
	src source.Source
	now func() time.Time
}

func New(src source.Source) *Loader {
	return &Loader{src: src, now: time.Now}
}

// Load fetches purchases, sales and stock concurrently, coerces them into
// records and joins stock to purchases. Any error is fatal for the caller.
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	start := l.now()
	kinds := domain.TableKinds()
	tables := make(map[domain.TableKind]*domain.RawTable, len(kinds))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		g.Go(func() error {
			table, err := l.src.Fetch(gctx, kind)
			if err != nil {
				return fmt.Errorf("fetch %s from %s: %w", kind, l.src.Name(), err)
			}
			mu.Lock()
			tables[kind] = table
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	purchases, err := parsePurchases(tables[domain.TablePurchases])
	if err != nil {
		return nil, err
	}
	sales, err := parseSales(tables[domain.TableSales])
	if err != nil {
		return nil, err
	}
	stock, err := parseStock(tables[domain.TableStock])
	if err != nil {
		return nil, err
	}

	ds := &domain.Dataset{
		Purchases:   purchases,
		Sales:       sales,
		StockOnHand: stock,
		Stock:       JoinStock(stock, purchases),
		LoadedAt:    l.now(),
	}

	log.Info().
		Str("source", l.src.Name()).
		Int("purchases", len(ds.Purchases)).
		Int("sales", len(ds.Sales)).
		Int("stock", len(ds.StockOnHand)).
		Int("joined_stock", len(ds.Stock)).
		Dur("took", ds.LoadedAt.Sub(start)).
		Msg("dataset loaded")

	return ds, nil
}

// Cache memoizes the first Load for the lifetime of the process. Concurrent
// first callers share one load; the result, error included, is never
// refreshed. A new dataset requires a restart.
type Cache struct {
	loader *Loader
	once   sync.Once
	ds     *domain.Dataset
	err    error
}

func NewCache(loader *Loader) *Cache {
	return &Cache{loader: loader}
}

// Dataset returns the memoized dataset, loading it on first use.
func (c *Cache) Dataset(ctx context.Context) (*domain.Dataset, error) {
	c.once.Do(func() {
		c.ds, c.err = c.loader.Load(ctx)
	})
	return c.ds, c.err
}
