package source

import (
	"context"
	"path"
	"path/filepath"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/andresuchdata/inventory-dashboard/internal/storage"
)

// ObjectSource downloads the table files from an S3-compatible bucket into a
// staging directory and reads them from there.
type ObjectSource struct {
	store      storage.ObjectStorage
	prefix     string
	stagingDir string
	names      FileNames
}

func NewObjectSource(store storage.ObjectStorage, prefix, stagingDir string, names FileNames) *ObjectSource {
	return &ObjectSource{store: store, prefix: prefix, stagingDir: stagingDir, names: names}
}

func (s *ObjectSource) Name() string { return "s3" }

func (s *ObjectSource) Fetch(ctx context.Context, kind domain.TableKind) (*domain.RawTable, error) {
	name, err := s.names.lookup(kind)
	if err != nil {
		return nil, err
	}

	key := path.Join(s.prefix, name)
	dest := filepath.Join(s.stagingDir, string(kind)+filepath.Ext(name))
	if err := s.store.DownloadObject(ctx, key, dest); err != nil {
		return nil, err
	}

	table, err := ReadTableFile(kind, dest)
	if err != nil {
		return nil, err
	}
	table.Origin = key
	return table, nil
}
