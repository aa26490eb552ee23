package source

import (
	"context"
	"fmt"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
)

// Source delivers the raw purchase, sales and stock tables.
type Source interface {
	Name() string
	Fetch(ctx context.Context, kind domain.TableKind) (*domain.RawTable, error)
}

// FileNames maps each table to the file (or object, or drive file) holding it.
type FileNames map[domain.TableKind]string

func (n FileNames) lookup(kind domain.TableKind) (string, error) {
	name, ok := n[kind]
	if !ok || name == "" {
		return "", fmt.Errorf("%w: no file configured for %s", domain.ErrSourceNotAvailable, kind)
	}
	return name, nil
}
