package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// tableColumn declares one column of a summary table. Counter columns align
// right so magnitudes line up down the table.
type tableColumn struct {
	title   string
	numeric bool
}

func textColumn(title string) tableColumn { return tableColumn{title: title} }

func numericColumn(title string) tableColumn {
	return tableColumn{title: title, numeric: true}
}

// summaryTable renders the ledger and cache summaries the CLI prints. Rows
// carry raw values; go-pretty formats them, so counters are appended as
// plain ints.
type summaryTable struct {
	tw table.Writer
}

func newSummaryTable(columns ...tableColumn) *summaryTable {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, col := range columns {
		header[i] = col.title
		align := text.AlignLeft
		if col.numeric {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	return &summaryTable{tw: tw}
}

func (t *summaryTable) addRow(cells ...any) {
	t.tw.AppendRow(table.Row(cells))
}

func (t *summaryTable) render() string {
	return t.tw.Render()
}
