// Package views binds every dashboard view to a pure function from a loaded
// dataset to a rendering-ready report.
package views

import (
	"fmt"
	"time"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
)

type builder func(ds *domain.Dataset, p Params) *domain.Report

var builders = map[domain.ViewKind]builder{
	domain.ViewOverview:       overview,
	domain.ViewBestSelling:    bestSelling,
	domain.ViewNonMoving:      nonMoving,
	domain.ViewRejectedGoods:  rejectedGoods,
	domain.ViewOnlineSales:    onlineSales,
	domain.ViewUniqueProducts: uniqueProducts,
	domain.ViewTopProducts:    topProducts,
}

// Menu lists the navigable views in order.
func Menu() []domain.MenuEntry {
	kinds := domain.Menu()
	entries := make([]domain.MenuEntry, 0, len(kinds))
	for _, k := range kinds {
		entries = append(entries, domain.MenuEntry{View: k, Title: k.Title()})
	}
	return entries
}

// Render builds the report of one view. A zero p.Now means the current time.
func Render(kind domain.ViewKind, ds *domain.Dataset, p Params) (*domain.Report, error) {
	build, ok := builders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownView, kind)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Now.IsZero() {
		p.Now = time.Now()
	}
	if ds == nil {
		ds = &domain.Dataset{}
	}

	report := build(ds, p)
	report.View = kind
	report.Title = kind.Title()
	return report, nil
}
