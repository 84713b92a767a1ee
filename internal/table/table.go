// Package table models a heterogeneous tabular dataset: ordered rows of
// named cells, each holding a string, a number or nothing. Column kinds are
// inferred once when a Table is built and cached alongside it.
package table

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrEmptyInput = errors.New("empty input")
	ErrParse      = errors.New("parse error")
)

// CellKind tags the variant held by a Cell.
type CellKind uint8

const (
	Null CellKind = iota
	Number
	String
	Boolean
)

// Cell is a tagged variant over {null, number, string, boolean}.
type Cell struct {
	Kind CellKind
	Num  float64
	Str  string
	Bool bool
}

func NullCell() Cell            { return Cell{Kind: Null} }
func NumberCell(f float64) Cell { return Cell{Kind: Number, Num: f} }
func StringCell(s string) Cell  { return Cell{Kind: String, Str: s} }
func BoolCell(b bool) Cell      { return Cell{Kind: Boolean, Bool: b} }
func (c Cell) IsNull() bool     { return c.Kind == Null }

func (c Cell) Equal(o Cell) bool {
	return c.Kind == o.Kind && c.Num == o.Num && c.Str == o.Str && c.Bool == o.Bool
}

// Value returns the cell as nil, float64, string or bool.
func (c Cell) Value() any {
	switch c.Kind {
	case Number:
		return c.Num
	case String:
		return c.Str
	case Boolean:
		return c.Bool
	default:
		return nil
	}
}

// String renders the cell the way a text column coerces it: null is "".
func (c Cell) String() string {
	switch c.Kind {
	case Number:
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	case String:
		return c.Str
	case Boolean:
		if c.Bool {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}

// ColumnKind is the nominal type of a column inferred from its non-null cells.
type ColumnKind uint8

const (
	// ColumnEmpty has no non-null cells.
	ColumnEmpty ColumnKind = iota
	// ColumnNumeric holds only numbers.
	ColumnNumeric
	// ColumnText holds only strings.
	ColumnText
	// ColumnMixed holds more than one kind of value.
	ColumnMixed
	// ColumnBool holds only booleans. It is neither text nor numeric.
	ColumnBool
)

func (k ColumnKind) String() string {
	switch k {
	case ColumnNumeric:
		return "numeric"
	case ColumnText:
		return "text"
	case ColumnMixed:
		return "mixed"
	case ColumnBool:
		return "bool"
	default:
		return "empty"
	}
}

// Table is an immutable, ordered collection of rows sharing one column set.
type Table struct {
	columns []string
	rows    [][]Cell
	kinds   []ColumnKind
}

// New builds a Table. Every row must have exactly len(columns) cells.
func New(columns []string, rows [][]Cell) (*Table, error) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, fmt.Errorf("duplicate column %q: %w", c, ErrParse)
		}
		seen[c] = true
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), len(columns), ErrParse)
		}
	}
	t := &Table{columns: columns, rows: rows}
	t.kinds = inferKinds(columns, rows)
	return t, nil
}

func inferKinds(columns []string, rows [][]Cell) []ColumnKind {
	kinds := make([]ColumnKind, len(columns))
	for j := range columns {
		var nums, strs, bools int
		for _, row := range rows {
			switch row[j].Kind {
			case Number:
				nums++
			case String:
				strs++
			case Boolean:
				bools++
			}
		}
		switch {
		case nums+strs+bools > max(nums, strs, bools):
			kinds[j] = ColumnMixed
		case nums > 0:
			kinds[j] = ColumnNumeric
		case strs > 0:
			kinds[j] = ColumnText
		case bools > 0:
			kinds[j] = ColumnBool
		default:
			kinds[j] = ColumnEmpty
		}
	}
	return kinds
}

func (t *Table) Columns() []string { return t.columns }
func (t *Table) NumRows() int      { return len(t.rows) }
func (t *Table) NumColumns() int   { return len(t.columns) }
func (t *Table) Row(i int) []Cell  { return t.rows[i] }
func (t *Table) Kind(j int) ColumnKind {
	return t.kinds[j]
}

// Column returns the cells of column j in row order.
func (t *Table) Column(j int) []Cell {
	out := make([]Cell, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[j]
	}
	return out
}

// TextColumn returns the index of the first text column in column order.
func (t *Table) TextColumn() (int, bool) {
	for j, k := range t.kinds {
		if k == ColumnText {
			return j, true
		}
	}
	return -1, false
}

// NumericColumns returns the indices of all numeric columns in column order.
func (t *Table) NumericColumns() []int {
	var out []int
	for j, k := range t.kinds {
		if k == ColumnNumeric {
			out = append(out, j)
		}
	}
	return out
}

// Texts returns column j coerced to strings, with nulls as "".
func (t *Table) Texts(j int) []string {
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[j].String()
	}
	return out
}
