package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table collects rows and renders them in aligned columns.
type Table struct {
	out     io.Writer
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	return &Table{out: out, headers: headers}
}

// Row appends a row of cells. The number of cells should match the
// number of headers. Empty cells render as "-".
func (t *Table) Row(cells ...string) {
	row := make([]string, len(cells))
	for i, c := range cells {
		if c == "" {
			c = "-"
		}
		row[i] = c
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of appended rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Flush renders the headers and all collected rows.
func (t *Table) Flush() error {
	tw := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(t.headers, "\t"))
	for _, r := range t.rows {
		_, _ = fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}
