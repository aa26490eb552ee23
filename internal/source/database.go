package source

import (
	"context"
	"fmt"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
)

// TableReader is satisfied by *postgres.DB.
type TableReader interface {
	ReadTable(ctx context.Context, table string) ([]string, [][]string, error)
}

// DatabaseSource reads each input table with a full-table select.
type DatabaseSource struct {
	db     TableReader
	tables map[domain.TableKind]string
}

func NewDatabaseSource(db TableReader, tables map[domain.TableKind]string) *DatabaseSource {
	return &DatabaseSource{db: db, tables: tables}
}

func (s *DatabaseSource) Name() string { return "postgres" }

func (s *DatabaseSource) Fetch(ctx context.Context, kind domain.TableKind) (*domain.RawTable, error) {
	table, ok := s.tables[kind]
	if !ok || table == "" {
		return nil, fmt.Errorf("%w: no table configured for %s", domain.ErrSourceNotAvailable, kind)
	}

	header, rows, err := s.db.ReadTable(ctx, table)
	if err != nil {
		return nil, err
	}

	return &domain.RawTable{
		Kind:   kind,
		Origin: table,
		Header: header,
		Rows:   rows,
	}, nil
}
