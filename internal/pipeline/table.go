package pipeline

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// renderTable prints rows as an aligned table for --dry-run.
func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetRowLine(false)
	table.AppendBulk(rows)
	table.Render()
}
