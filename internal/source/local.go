package source

import (
	"context"
	"path/filepath"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
)

// LocalSource reads the tables from files in a directory.
type LocalSource struct {
	dir   string
	names FileNames
}

func NewLocalSource(dir string, names FileNames) *LocalSource {
	return &LocalSource{dir: dir, names: names}
}

func (s *LocalSource) Name() string { return "local" }

func (s *LocalSource) Fetch(ctx context.Context, kind domain.TableKind) (*domain.RawTable, error) {
	name, err := s.names.lookup(kind)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadTableFile(kind, filepath.Join(s.dir, name))
}
