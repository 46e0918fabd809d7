package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderTable renders rows under headers in the rounded style shared by
// every phototag listing. Columns are left-aligned; rightAligned lists the
// 1-based columns holding counts, which align right under a left-aligned
// header.
func renderTable(headers []string, rows [][]string, rightAligned ...int) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	if len(rightAligned) > 0 {
		configs := make([]table.ColumnConfig, 0, len(rightAligned))
		for _, column := range rightAligned {
			configs = append(configs, table.ColumnConfig{
				Number:      column,
				Align:       text.AlignRight,
				AlignHeader: text.AlignLeft,
			})
		}
		tw.SetColumnConfigs(configs)
	}

	return tw.Render()
}
