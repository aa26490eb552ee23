package source

import (
	"context"
	"path/filepath"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/andresuchdata/inventory-dashboard/internal/drive"
)

// DriveSource downloads the table files from a Google Drive folder.
type DriveSource struct {
	downloader *drive.Downloader
	stagingDir string
	names      FileNames
}

func NewDriveSource(downloader *drive.Downloader, stagingDir string, names FileNames) *DriveSource {
	return &DriveSource{downloader: downloader, stagingDir: stagingDir, names: names}
}

func (s *DriveSource) Name() string { return "drive" }

func (s *DriveSource) Fetch(ctx context.Context, kind domain.TableKind) (*domain.RawTable, error) {
	name, err := s.names.lookup(kind)
	if err != nil {
		return nil, err
	}

	local, err := s.downloader.DownloadNamed(ctx, name, filepath.Join(s.stagingDir, string(kind)))
	if err != nil {
		return nil, err
	}
	return ReadTableFile(kind, local)
}
