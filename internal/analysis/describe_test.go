package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranshivaraju/sentilytics/internal/table"
)

func TestDescribe_Mixed(t *testing.T) {
	tbl := newTable(t, []string{"text", "num"},
		[]table.Cell{s("a"), n(1)},
		[]table.Cell{s("b"), n(2)},
		[]table.Cell{s("a"), n(3)},
	)

	sum := Describe(tbl)
	require.Len(t, sum, 2)

	expectText := map[string]any{
		StatCount: 3, StatUnique: 2, StatTop: "a", StatFreq: 2,
		StatMean: "", StatStd: "", StatMin: "", StatQ1: "", StatMedian: "", StatQ3: "", StatMax: "",
	}
	for name, want := range expectText {
		got, ok := sum.Lookup("text", name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	expectNum := map[string]any{
		StatCount: 3, StatUnique: "", StatTop: "", StatFreq: "",
		StatMean: 2.0, StatStd: 1.0, StatMin: 1.0, StatQ1: 1.5, StatMedian: 2.0, StatQ3: 2.5, StatMax: 3.0,
	}
	for name, want := range expectNum {
		got, ok := sum.Lookup("num", name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	body, err := json.Marshal(sum)
	require.NoError(t, err)
	assert.Contains(t, string(body), `{"text":{"count":3,"unique":2,"top":"a","freq":2,"mean":"",`)
}

func TestDescribe_NumericOnly(t *testing.T) {
	tbl := newTable(t, []string{"x"}, []table.Cell{n(5)})
	sum := Describe(tbl)
	require.Len(t, sum, 1)

	var names []string
	for _, st := range sum[0].Stats {
		names = append(names, st.Name)
	}
	assert.Equal(t, numericStats, names)

	std, _ := sum.Lookup("x", StatStd)
	assert.Equal(t, "", std)
	median, _ := sum.Lookup("x", StatMedian)
	assert.Equal(t, 5.0, median)
}

func TestDescribe_TextOnlyWithNulls(t *testing.T) {
	tbl := newTable(t, []string{"t"},
		[]table.Cell{s("x")},
		[]table.Cell{table.NullCell()},
		[]table.Cell{s("y")},
		[]table.Cell{s("y")},
	)
	sum := Describe(tbl)
	require.Len(t, sum[0].Stats, len(categoricalStats))

	count, _ := sum.Lookup("t", StatCount)
	top, _ := sum.Lookup("t", StatTop)
	freq, _ := sum.Lookup("t", StatFreq)
	assert.Equal(t, 3, count)
	assert.Equal(t, "y", top)
	assert.Equal(t, 2, freq)
}

func TestQuantile(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.75, quantile(xs, 0.25), 1e-12)
	assert.InDelta(t, 2.5, quantile(xs, 0.5), 1e-12)
	assert.InDelta(t, 3.25, quantile(xs, 0.75), 1e-12)
	assert.Equal(t, 4.0, quantile(xs, 1))
}

func TestDescribe_ExtremeValuesStayEncodable(t *testing.T) {
	tbl := newTable(t, []string{"x"}, []table.Cell{n(-1.7e308)}, []table.Cell{n(1.7e308)})
	sum := Describe(tbl)

	q1, _ := sum.Lookup("x", StatQ1)
	median, _ := sum.Lookup("x", StatMedian)
	q3, _ := sum.Lookup("x", StatQ3)
	assert.InDelta(t, -0.85e308, q1, 1e294)
	assert.InDelta(t, 0.0, median, 1e294)
	assert.InDelta(t, 0.85e308, q3, 1e294)

	_, err := json.Marshal(sum)
	require.NoError(t, err)
}

func TestDescribe_BoolColumnIsCategorical(t *testing.T) {
	tbl := newTable(t, []string{"score", "flag"},
		[]table.Cell{n(1), table.BoolCell(true)},
		[]table.Cell{n(2), table.BoolCell(false)},
		[]table.Cell{n(3), table.BoolCell(true)},
	)
	sum := Describe(tbl)

	count, _ := sum.Lookup("flag", StatCount)
	unique, _ := sum.Lookup("flag", StatUnique)
	top, _ := sum.Lookup("flag", StatTop)
	freq, _ := sum.Lookup("flag", StatFreq)
	mean, _ := sum.Lookup("flag", StatMean)
	assert.Equal(t, 3, count)
	assert.Equal(t, 2, unique)
	assert.Equal(t, true, top)
	assert.Equal(t, 2, freq)
	assert.Equal(t, "", mean)

	body, err := json.Marshal(sum)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"flag":{"count":3,"unique":2,"top":true,"freq":2,"mean":""`)
}
