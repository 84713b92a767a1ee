package table

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// naValues are the field spellings read as missing in delimited input.
var naValues = map[string]bool{
	"":        true,
	"NA":      true,
	"N/A":     true,
	"n/a":     true,
	"NaN":     true,
	"nan":     true,
	"-NaN":    true,
	"-nan":    true,
	"NULL":    true,
	"null":    true,
	"None":    true,
	"<NA>":    true,
	"#N/A":    true,
	"#NA":     true,
	"1.#IND":  true,
	"1.#QNAN": true,
}

// boolValues are the field spellings read as booleans in delimited input.
var boolValues = map[string]bool{
	"True":  true,
	"TRUE":  true,
	"true":  true,
	"False": false,
	"FALSE": false,
	"false": false,
}

// ReadCSV parses comma-separated data with a header row. A column whose
// non-missing fields all parse as numbers becomes numeric, one whose fields
// are all boolean spellings becomes boolean, and any other column keeps its
// fields as strings.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("no columns to parse: %w", ErrParse)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %v: %w", err, ErrParse)
	}

	var records [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %v: %w", err, ErrParse)
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("expected %d fields in line %d, saw %d: %w", len(header), line, len(rec), ErrParse)
		}
		records = append(records, rec)
	}

	return fromStrings(header, records)
}

// ReadXLSX parses the first worksheet of an XLSX workbook; the first row is the header.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %v: %w", err, ErrParse)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %w", ErrParse)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %v: %w", sheets[0], err, ErrParse)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no columns to parse: %w", ErrParse)
	}

	header := rows[0]
	records := rows[1:]
	width := len(header)
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	for len(header) < width {
		header = append(header, fmt.Sprintf("Unnamed: %d", len(header)))
	}
	return fromStrings(header, records)
}

// fieldKind is the cell kind a delimited column is parsed into.
type fieldKind uint8

const (
	fieldNumber fieldKind = iota
	fieldBool
	fieldString
)

func fromStrings(header []string, records [][]string) (*Table, error) {
	columns := dedupeColumns(header)
	ncol := len(columns)

	kinds := make([]fieldKind, ncol)
	for j := range kinds {
		kinds[j] = columnFieldKind(records, j)
	}

	rows := make([][]Cell, len(records))
	for i, rec := range records {
		row := make([]Cell, ncol)
		for j := range row {
			if j >= len(rec) || naValues[rec[j]] {
				row[j] = NullCell()
				continue
			}
			switch kinds[j] {
			case fieldNumber:
				f, _ := parseNumber(rec[j])
				row[j] = NumberCell(f)
			case fieldBool:
				row[j] = BoolCell(boolValues[rec[j]])
			default:
				row[j] = StringCell(rec[j])
			}
		}
		rows[i] = row
	}
	return New(columns, rows)
}

// columnFieldKind picks the narrowest kind every non-missing field of column
// j parses as. A column with no such fields is numeric and ends up empty.
func columnFieldKind(records [][]string, j int) fieldKind {
	numeric, boolean := true, true
	for _, rec := range records {
		if j >= len(rec) || naValues[rec[j]] {
			continue
		}
		if numeric {
			if _, ok := parseNumber(rec[j]); !ok {
				numeric = false
			}
		}
		if boolean {
			if _, ok := boolValues[rec[j]]; !ok {
				boolean = false
			}
		}
		if !numeric && !boolean {
			return fieldString
		}
	}
	if numeric {
		return fieldNumber
	}
	return fieldBool
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// dedupeColumns renames repeated headers "a", "a" to "a", "a.1" and fills blanks.
func dedupeColumns(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for j, name := range header {
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", j)
		}
		candidate := name
		for n := 1; used[candidate]; n++ {
			candidate = fmt.Sprintf("%s.%d", name, n)
		}
		used[candidate] = true
		out[j] = candidate
	}
	return out
}

// FromRecords builds a Table from JSON objects. Columns appear in the order
// their keys are first seen; keys missing from a record become null cells.
// Nested arrays and objects keep their compact JSON text.
func FromRecords(records []json.RawMessage) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	index := make(map[string]int)
	var columns []string
	parsed := make([]map[string]Cell, len(records))

	for i, raw := range records {
		fields, order, err := decodeObject(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %v: %w", i, err, ErrParse)
		}
		for _, k := range order {
			if _, ok := index[k]; !ok {
				index[k] = len(columns)
				columns = append(columns, k)
			}
		}
		parsed[i] = fields
	}

	rows := make([][]Cell, len(parsed))
	for i, fields := range parsed {
		row := make([]Cell, len(columns))
		for j, col := range columns {
			if c, ok := fields[col]; ok {
				row[j] = c
			}
		}
		rows[i] = row
	}
	return New(columns, rows)
}

// decodeObject walks one JSON object token by token to keep key order.
func decodeObject(raw json.RawMessage) (map[string]Cell, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, errors.New("expected a JSON object")
	}

	fields := make(map[string]Cell)
	var order []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := tok.(string)

		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		c, err := cellFromJSON(v)
		if err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", key, err)
		}
		if _, dup := fields[key]; !dup {
			order = append(order, key)
		}
		fields[key] = c
	}
	return fields, order, nil
}

func cellFromJSON(v json.RawMessage) (Cell, error) {
	trimmed := bytes.TrimSpace(v)
	if len(trimmed) == 0 {
		return NullCell(), nil
	}
	switch trimmed[0] {
	case 'n':
		return NullCell(), nil
	case 't':
		return BoolCell(true), nil
	case 'f':
		return BoolCell(false), nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Cell{}, err
		}
		return StringCell(s), nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return Cell{}, err
		}
		return StringCell(buf.String()), nil
	default:
		f, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			return Cell{}, err
		}
		return NumberCell(f), nil
	}
}
