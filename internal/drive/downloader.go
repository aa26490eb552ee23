package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	googleSheetMimeType = "application/vnd.google-apps.spreadsheet"
	csvMimeType         = "text/csv"
)

// Downloader pulls named files out of a single Drive folder.
type Downloader struct {
	service  *Service
	folderID string
}

// NewDownloader resolves folderPath once and returns a Downloader bound to it.
func NewDownloader(ctx context.Context, s *Service, folderPath string) (*Downloader, error) {
	folderID, err := s.FindFolderByPath(ctx, folderPath)
	if err != nil {
		return nil, err
	}
	return &Downloader{service: s, folderID: folderID}, nil
}

// DownloadNamed downloads the file called name (case-insensitive) into dir
// and returns the local path. A Google Sheet named like the file without its
// extension is exported as CSV instead.
func (d *Downloader) DownloadNamed(ctx context.Context, name, dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("download dir is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download dir: %w", err)
	}

	files, err := d.service.ListFiles(ctx, d.folderID)
	if err != nil {
		return "", err
	}

	f := matchFile(files, name)
	if f == nil {
		return "", fmt.Errorf("file %s not found in drive folder %s", name, d.folderID)
	}

	localPath := filepath.Join(dir, localName(f))
	err = writeStaged(localPath, func(w io.Writer) error {
		if f.MimeType == googleSheetMimeType {
			return d.service.ExportFile(ctx, f.ID, csvMimeType, w)
		}
		return d.service.DownloadFile(ctx, f.ID, w)
	})
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", f.Name, err)
	}

	return localPath, nil
}

// writeStaged creates path and fills it with fetch. On any failure the
// partial file is removed.
func writeStaged(path string, fetch func(io.Writer) error) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create local file %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return fetch(out)
}

// localName is the staging file name; exported sheets always end in .csv.
func localName(f *File) string {
	base := filepath.Base(f.Name)
	if f.MimeType != googleSheetMimeType {
		return base
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
}

// matchFile prefers an exact name match, then a Google Sheet whose name
// equals name without its extension.
func matchFile(files []*File, name string) *File {
	name = strings.TrimSpace(name)
	for _, f := range files {
		if strings.EqualFold(strings.TrimSpace(f.Name), name) {
			return f
		}
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	for _, f := range files {
		if f.MimeType == googleSheetMimeType && strings.EqualFold(strings.TrimSpace(f.Name), stem) {
			return f
		}
	}
	return nil
}
