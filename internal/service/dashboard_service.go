package service

import (
	"context"
	"time"

	"github.com/andresuchdata/inventory-dashboard/internal/cache"
	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/andresuchdata/inventory-dashboard/internal/views"
	"github.com/rs/zerolog/log"
)

// DatasetProvider hands out the loaded dataset. loader.Cache implements it.
type DatasetProvider interface {
	Dataset(ctx context.Context) (*domain.Dataset, error)
}

type DashboardService struct {
	data  DatasetProvider
	cache cache.ReportCache
	now   func() time.Time
}

func NewDashboardService(data DatasetProvider, cacheImpl cache.ReportCache) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &DashboardService{data: data, cache: cacheImpl, now: time.Now}
}

func (s *DashboardService) Menu() []domain.MenuEntry {
	return views.Menu()
}

// Report renders one view. Cached reports are served when present; cache
// failures only degrade to rendering.
func (s *DashboardService) Report(ctx context.Context, kind domain.ViewKind, params views.Params) (*domain.Report, error) {
	if params.Now.IsZero() {
		params.Now = s.now()
	}
	key := params.Key()

	if report, ok, err := s.cache.Get(ctx, kind, key); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Str("view", kind.String()).Msg("report: cache get failed")
	}

	ds, err := s.data.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	report, err := views.Render(kind, ds, params)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, kind, key, report); err != nil {
		log.Warn().Err(err).Str("view", kind.String()).Msg("report: cache set failed")
	}

	return report, nil
}

func (s *DashboardService) DatasetInfo(ctx context.Context) (domain.DatasetInfo, error) {
	ds, err := s.data.Dataset(ctx)
	if err != nil {
		return domain.DatasetInfo{}, err
	}
	return ds.Info(), nil
}
