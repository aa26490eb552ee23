package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/andresuchdata/inventory-dashboard/internal/storage"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeMenu(w io.Writer, menu []domain.MenuEntry) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "VIEW\tTITLE")
	for _, entry := range menu {
		fmt.Fprintf(tw, "%s\t%s\n", entry.View, entry.Title)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, report *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// writeReport prints scalars, then every table and series, as aligned text.
func writeReport(w io.Writer, report *domain.Report) error {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "%s\n%s\n", report.Title, strings.Repeat("=", len(report.Title)))

	for _, s := range report.Scalars {
		fmt.Fprintf(tw, "%s:\t%s\n", s.Label, s.Display)
	}

	for _, t := range report.Tables {
		fmt.Fprintf(tw, "\n%s\n", t.Name)
		fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
		if len(t.Rows) == 0 {
			fmt.Fprintln(tw, "(no rows)")
			continue
		}
		for _, row := range t.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	}

	for _, s := range report.Series {
		fmt.Fprintf(tw, "\n%s\n", s.Name)
		for _, p := range s.Points {
			fmt.Fprintf(tw, "%s\t%g\n", p.Key, p.Value)
		}
	}
	return tw.Flush()
}

func writeObjects(w io.Writer, objects []storage.ObjectInfo) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "KEY\tSIZE")
	for _, o := range objects {
		fmt.Fprintf(tw, "%s\t%d\n", o.Key, o.Size)
	}
	return tw.Flush()
}
