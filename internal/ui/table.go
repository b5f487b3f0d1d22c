package ui

import (
	"strings"
)

// Align type for table column alignment
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// TableColumn defines a column in a table
type TableColumn struct {
	Key      string
	Header   string
	Align    Align
	MaxWidth int
}

// RenderTable renders rows as a unicode box table. Cell values may carry
// ANSI styling; widths are measured on visible characters.
func RenderTable(columns []TableColumn, rows []map[string]string) string {
	widths := make([]int, len(columns))
	for i, col := range columns {
		w := VisibleWidth(col.Header)
		for _, row := range rows {
			if cw := VisibleWidth(row[col.Key]); cw > w {
				w = cw
			}
		}
		if col.MaxWidth > 0 && w > col.MaxWidth {
			w = col.MaxWidth
		}
		widths[i] = w + 2
	}

	hLine := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w)
		}
		return Muted("%s", left + strings.Join(parts, mid) + right)
	}

	renderRow := func(cell func(TableColumn) string) string {
		parts := make([]string, len(columns))
		for i, col := range columns {
			text := cell(col)
			if col.Align == AlignRight {
				text = PadLeft(text, widths[i]-2)
			} else {
				text = PadRight(text, widths[i]-2)
			}
			parts[i] = " " + text + " "
		}
		v := Muted("│")
		return v + strings.Join(parts, v) + v
	}

	lines := []string{hLine("┌", "┬", "┐")}
	lines = append(lines, renderRow(func(c TableColumn) string { return Bold("%s", c.Header) }))
	lines = append(lines, hLine("├", "┼", "┤"))
	for _, row := range rows {
		lines = append(lines, renderRow(func(c TableColumn) string { return row[c.Key] }))
	}
	lines = append(lines, hLine("└", "┴", "┘"))

	return strings.Join(lines, "\n") + "\n"
}
