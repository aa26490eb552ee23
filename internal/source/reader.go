package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ReadTableFile reads a CSV or XLSX file into a RawTable. XLSX files use the
// first sheet; the first row is the header.
func ReadTableFile(kind domain.TableKind, path string) (*domain.RawTable, error) {
	var (
		header []string
		rows   [][]string
		err    error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		header, rows, err = readCSV(path)
	case ".xlsx", ".xlsm":
		header, rows, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}

	return &domain.RawTable{
		Kind:   kind,
		Origin: path,
		Header: header,
		Rows:   rows,
	}, nil
}

func readCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("%s is empty", path)
		}
		return nil, nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	rows := make([][]string, 0)
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
		rows = append(rows, record)
	}

	return header, rows, nil
}

func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("xlsx file %s has no sheets", path)
	}
	sheet := sheets[0]

	it, err := f.Rows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer it.Close()

	var (
		header []string
		rows   = make([][]string, 0)
	)
	for it.Next() {
		record, err := it.Columns()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row from %s: %w", path, err)
		}
		if header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
	}
	if err := it.Error(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rows in %s: %w", path, err)
	}
	if header == nil {
		return nil, nil, fmt.Errorf("%s is empty", path)
	}

	return header, rows, nil
}
