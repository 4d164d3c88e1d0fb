package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"finboard/internal/core"
	"finboard/internal/report"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

func writeRanking(w io.Writer, title string, rows []report.CategoryRow) {
	heading(w, title)
	if len(rows) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	tw := newTable(w)
	for i, r := range rows {
		fmt.Fprintf(tw, "%d.\t%s\t%s\n", i+1, r.CategoryName, core.FormatAmount(r.Amount))
	}
	tw.Flush()
}
