package table

import (
	"strconv"
	"strings"

	"github.com/kiranshivaraju/sentilytics/internal/textclean"
)

// Clean drops rows whose cells are all null, drops rows identical to an
// earlier row (the first occurrence keeps its position), and normalizes
// every string cell with textclean.Clean. Columns are never added or removed.
func Clean(t *Table) *Table {
	seen := make(map[string]struct{}, len(t.rows))
	rows := make([][]Cell, 0, len(t.rows))

	for _, row := range t.rows {
		if allNull(row) {
			continue
		}
		key := rowKey(row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		out := make([]Cell, len(row))
		for j, c := range row {
			if c.Kind == String {
				c = StringCell(textclean.Clean(c.Str))
			}
			out[j] = c
		}
		rows = append(rows, out)
	}

	cleaned := &Table{columns: t.columns, rows: rows}
	cleaned.kinds = inferKinds(cleaned.columns, rows)
	return cleaned
}

func allNull(row []Cell) bool {
	for _, c := range row {
		if !c.IsNull() {
			return false
		}
	}
	return true
}

// rowKey encodes a row unambiguously: kind tag, then a length-prefixed payload.
func rowKey(row []Cell) string {
	var b strings.Builder
	for _, c := range row {
		switch c.Kind {
		case Null:
			b.WriteByte('n')
		case Number:
			b.WriteByte('f')
			if c.Num == 0 {
				b.WriteByte('0')
			} else {
				b.WriteString(strconv.FormatFloat(c.Num, 'g', -1, 64))
			}
			b.WriteByte(';')
		case String:
			b.WriteByte('s')
			b.WriteString(strconv.Itoa(len(c.Str)))
			b.WriteByte(':')
			b.WriteString(c.Str)
		case Boolean:
			b.WriteByte('b')
			if c.Bool {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
	return b.String()
}
