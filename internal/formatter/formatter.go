// Package formatter renders tables as aligned plain text for previews and
// the run summary.
package formatter

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ang-eichhorst/2025municipalelections/internal/models"
)

// Render returns a plain-text view of the table with width-aligned columns.
// maxRows caps the data rows shown; 0 shows everything. Spanish headers and
// names contain non-ASCII characters, so alignment uses display width rather
// than byte length.
func Render(t *models.Table, maxRows int) string {
	if len(t.Headers) == 0 {
		return "(empty table)\n"
	}

	rows := t.Rows
	truncated := 0

	if maxRows > 0 && len(rows) > maxRows {
		truncated = len(rows) - maxRows
		rows = rows[:maxRows]
	}

	lines := make([][]string, 0, len(rows)+1)
	lines = append(lines, t.Headers)

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cellString(cell)
		}

		lines = append(lines, cells)
	}

	widths := make([]int, len(t.Headers))

	for _, line := range lines {
		for i, cell := range line {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	var b strings.Builder

	writeLine(&b, lines[0], widths)
	writeSeparator(&b, widths)

	for _, line := range lines[1:] {
		writeLine(&b, line, widths)
	}

	if truncated > 0 {
		fmt.Fprintf(&b, "... %d more rows\n", truncated)
	}

	return b.String()
}

func writeLine(b *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}

		b.WriteString(runewidth.FillRight(cell, widths[i]))
	}

	b.WriteString("\n")
}

func writeSeparator(b *strings.Builder, widths []int) {
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}

		b.WriteString(strings.Repeat("-", w))
	}

	b.WriteString("\n")
}

func cellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
