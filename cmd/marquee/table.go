package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderList renders rows under headers with every column left-aligned.
func renderList(headers []string, rows [][]string) string {
	return newTableWriter(headers, rows).Render()
}

// renderMetrics renders name/count pairs with the count column right-aligned.
func renderMetrics(rows [][]string) string {
	tw := newTableWriter([]string{"Metric", "Count"}, rows)
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	return tw.Render()
}

func newTableWriter(headers []string, rows [][]string) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}
	return tw
}
