// Package export writes reports as CSV or XLSX documents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	case "":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: export format %q", domain.ErrUnsupportedFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// FileName is the attachment name for a report of the given view.
func (f Format) FileName(view domain.ViewKind) string {
	return fmt.Sprintf("%s.%s", view.String(), f)
}

// Write encodes report to w in the given format.
func Write(w io.Writer, f Format, report *domain.Report) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, report)
	case FormatXLSX:
		return WriteXLSX(w, report)
	}
	return fmt.Errorf("%w: export format %q", domain.ErrUnsupportedFormat, f)
}

// WriteCSV writes the report's scalars and tables in order. Each section
// starts with a title row and sections are separated by a blank line.
func WriteCSV(w io.Writer, report *domain.Report) error {
	writer := csv.NewWriter(w)
	section := 0
	begin := func(title string) error {
		if section > 0 {
			if err := writer.Write([]string{}); err != nil {
				return err
			}
		}
		section++
		return writer.Write([]string{title})
	}

	if len(report.Scalars) > 0 {
		if err := begin("Summary"); err != nil {
			return err
		}
		for _, s := range report.Scalars {
			if err := writer.Write([]string{s.Label, s.Display}); err != nil {
				return err
			}
		}
	}

	for _, t := range report.Tables {
		if err := begin(t.Name); err != nil {
			return err
		}
		if err := writer.Write(t.Columns); err != nil {
			return err
		}
		if err := writer.WriteAll(t.Rows); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes a Summary sheet for scalars, one sheet per table and one
// sheet per series.
func WriteXLSX(w io.Writer, report *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	names := newSheetNamer()
	var sheets []sheet

	if len(report.Scalars) > 0 {
		s := sheet{name: names.next("Summary"), columns: []string{"Metric", "Value"}}
		for _, sc := range report.Scalars {
			s.rows = append(s.rows, []any{sc.Label, sc.Display})
		}
		sheets = append(sheets, s)
	}
	for _, t := range report.Tables {
		s := sheet{name: names.next(t.Name), columns: t.Columns}
		for _, row := range t.Rows {
			cells := make([]any, len(row))
			for i, v := range row {
				cells[i] = v
			}
			s.rows = append(s.rows, cells)
		}
		sheets = append(sheets, s)
	}
	for _, series := range report.Series {
		s := sheet{name: names.next("Chart " + series.Name), columns: []string{series.Name, "Value"}}
		for _, p := range series.Points {
			s.rows = append(s.rows, []any{p.Key, p.Value})
		}
		sheets = append(sheets, s)
	}
	if len(sheets) == 0 {
		sheets = append(sheets, sheet{name: names.next(report.Title)})
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("create sheet %q: %w", s.name, err)
		}
		if err := s.write(f, headerStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

type sheet struct {
	name    string
	columns []string
	rows    [][]any
}

func (s sheet) write(f *excelize.File, headerStyle int) error {
	for i, col := range s.columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.name, cell, col); err != nil {
			return err
		}
		if err := f.SetCellStyle(s.name, cell, cell, headerStyle); err != nil {
			return err
		}
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, colName, colName, 18); err != nil {
			return err
		}
	}

	for r, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("write row %d of %q: %w", r+2, s.name, err)
		}
	}
	return nil
}

const maxSheetName = 31

// sheetNamer produces unique sheet names excel accepts.
type sheetNamer struct {
	used map[string]int
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{used: make(map[string]int)}
}

func (n *sheetNamer) next(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Sheet"
	}
	name = truncate(name, maxSheetName)

	key := strings.ToLower(name)
	n.used[key]++
	if count := n.used[key]; count > 1 {
		suffix := fmt.Sprintf(" (%d)", count)
		name = truncate(name, maxSheetName-len(suffix)) + suffix
	}
	return name
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
