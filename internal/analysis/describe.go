package analysis

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kiranshivaraju/sentilytics/internal/table"
)

// Stat names in the order they are reported.
const (
	StatCount  = "count"
	StatUnique = "unique"
	StatTop    = "top"
	StatFreq   = "freq"
	StatMean   = "mean"
	StatStd    = "std"
	StatMin    = "min"
	StatQ1     = "25%"
	StatMedian = "50%"
	StatQ3     = "75%"
	StatMax    = "max"
)

var (
	categoricalStats = []string{StatCount, StatUnique, StatTop, StatFreq}
	numericStats     = []string{StatCount, StatMean, StatStd, StatMin, StatQ1, StatMedian, StatQ3, StatMax}
	allStats         = []string{StatCount, StatUnique, StatTop, StatFreq, StatMean, StatStd, StatMin, StatQ1, StatMedian, StatQ3, StatMax}
)

// Stat is one named aggregate. A Value of "" means not applicable.
type Stat struct {
	Name  string
	Value any
}

// ColumnSummary holds the aggregates of one column.
type ColumnSummary struct {
	Column string
	Stats  []Stat
}

// Summary is a per-column table of aggregates in column order.
// It marshals as {"column": {"stat": value}}.
type Summary []ColumnSummary

// Lookup returns the value of stat for column.
func (s Summary) Lookup(column, stat string) (any, bool) {
	for _, cs := range s {
		if cs.Column != column {
			continue
		}
		for _, st := range cs.Stats {
			if st.Name == stat {
				return st.Value, true
			}
		}
	}
	return nil, false
}

func (s Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cs := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, cs.Column); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for k, st := range cs.Stats {
			if k > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, st.Name); err != nil {
				return nil, err
			}
			v, err := json.Marshal(st.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(v)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}

// Describe summarizes every column. Numeric columns report count, mean,
// sample standard deviation, min, quartiles and max; all other columns
// report count, unique, top and freq. When both sorts of column are present
// every column carries the union of stat names, with "" where a stat does
// not apply.
func Describe(t *table.Table) Summary {
	var hasNumeric, hasOther bool
	for j := range t.Columns() {
		if t.Kind(j) == table.ColumnNumeric {
			hasNumeric = true
		} else {
			hasOther = true
		}
	}

	names := allStats
	switch {
	case hasNumeric && !hasOther:
		names = numericStats
	case hasOther && !hasNumeric:
		names = categoricalStats
	}

	out := make(Summary, 0, t.NumColumns())
	for j, col := range t.Columns() {
		var values map[string]any
		if t.Kind(j) == table.ColumnNumeric {
			values = describeNumeric(t.Column(j))
		} else {
			values = describeCategorical(t.Column(j))
		}
		cs := ColumnSummary{Column: col, Stats: make([]Stat, len(names))}
		for k, name := range names {
			v, ok := values[name]
			if !ok {
				v = ""
			}
			cs.Stats[k] = Stat{Name: name, Value: v}
		}
		out = append(out, cs)
	}
	return out
}

func describeNumeric(cells []table.Cell) map[string]any {
	var xs []float64
	for _, c := range cells {
		if c.Kind == table.Number {
			xs = append(xs, c.Num)
		}
	}
	out := map[string]any{StatCount: len(xs)}
	if len(xs) == 0 {
		return out
	}
	sort.Float64s(xs)

	mean, std := stat.MeanStdDev(xs, nil)
	out[StatMean] = finiteOrEmpty(mean)
	if len(xs) > 1 {
		out[StatStd] = finiteOrEmpty(std)
	}
	out[StatMin] = xs[0]
	out[StatQ1] = finiteOrEmpty(quantile(xs, 0.25))
	out[StatMedian] = finiteOrEmpty(quantile(xs, 0.5))
	out[StatQ3] = finiteOrEmpty(quantile(xs, 0.75))
	out[StatMax] = xs[len(xs)-1]
	return out
}

func describeCategorical(cells []table.Cell) map[string]any {
	type tally struct {
		cell  table.Cell
		count int
	}
	var tallies []tally
	var count int
	for _, c := range cells {
		if c.IsNull() {
			continue
		}
		count++
		found := false
		for i := range tallies {
			if tallies[i].cell.Equal(c) {
				tallies[i].count++
				found = true
				break
			}
		}
		if !found {
			tallies = append(tallies, tally{cell: c, count: 1})
		}
	}

	out := map[string]any{StatCount: count, StatUnique: len(tallies)}
	if len(tallies) == 0 {
		return out
	}
	top := tallies[0]
	for _, tl := range tallies[1:] {
		if tl.count > top.count {
			top = tl
		}
	}
	out[StatTop] = top.cell.Value()
	out[StatFreq] = top.count
	return out
}

// quantile interpolates linearly between closest ranks of sorted xs. The
// weighted sum stays finite for finite inputs of any magnitude.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	f := h - float64(lo)
	if f == 0 {
		return sorted[lo]
	}
	return sorted[lo]*(1-f) + sorted[lo+1]*f
}

func finiteOrEmpty(x float64) any {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return ""
	}
	return x
}
