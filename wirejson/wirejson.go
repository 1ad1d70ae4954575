// Package wirejson transcribes row sets to and from a JSON fixture format:
//
//	{"columns": ["id", "start_time"], "rows": [["e1", 1000], ["e2", null]]}
//
// Cells keep their JSON type; the schema only picks the integer or float
// width, so a fixture can still carry a cell of the wrong kind for a column.
// Blob columns hold base64 strings. JSON objects and arrays in a cell are
// stored as their JSON text, which is what JSON-backed columns expect.
package wirejson

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"

	j "github.com/goccy/go-json"

	rowskema "github.com/reoring/rowskema"
)

type document struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Marshal encodes rs into the fixture format.
func Marshal(rs rowskema.RowSet) ([]byte, error) {
	return j.Marshal(toDocument(rs))
}

// MarshalIndent is Marshal with indentation.
func MarshalIndent(rs rowskema.RowSet, prefix, indent string) ([]byte, error) {
	return j.MarshalIndent(toDocument(rs), prefix, indent)
}

func toDocument(rs rowskema.RowSet) document {
	cols := rs.Columns()
	doc := document{Columns: cols, Rows: make([][]any, rs.Len())}
	for r := range doc.Rows {
		row := make([]any, len(cols))
		for c := range cols {
			v := rs.Cell(r, c)
			if b, ok := v.AsBlob(); ok {
				row[c] = base64.StdEncoding.EncodeToString(b)
				continue
			}
			row[c] = v.Any()
		}
		doc.Rows[r] = row
	}
	return doc
}

// Unmarshal decodes a fixture. s may be nil, in which case every column is
// inferred from its cells.
func Unmarshal(data []byte, s *rowskema.Schema) (*rowskema.Table, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("wirejson: decode document: %w", err)
	}
	kinds := make([]rowskema.Kind, len(doc.Columns))
	seen := make(map[string]bool, len(doc.Columns))
	for i, name := range doc.Columns {
		if seen[name] {
			return nil, fmt.Errorf("wirejson: duplicate column %q", name)
		}
		seen[name] = true
		if s != nil {
			if f, ok := s.Field(name); ok {
				kinds[i] = f.Kind()
			}
		}
	}
	t := &rowskema.Table{Cols: doc.Columns, Rows: make([][]rowskema.Value, len(doc.Rows))}
	for r, raw := range doc.Rows {
		if len(raw) > len(doc.Columns) {
			return nil, fmt.Errorf("wirejson: row %d has %d cells for %d columns", r, len(raw), len(doc.Columns))
		}
		row := make([]rowskema.Value, len(doc.Columns))
		for c, cell := range raw {
			v, err := toValue(cell, kinds[c])
			if err != nil {
				return nil, fmt.Errorf("wirejson: row %d column %q: %w", r, doc.Columns[c], err)
			}
			row[c] = v
		}
		t.Rows[r] = row
	}
	return t, nil
}

// toValue converts one JSON cell. want is KindNull for columns the schema
// does not know.
func toValue(cell any, want rowskema.Kind) (rowskema.Value, error) {
	switch x := cell.(type) {
	case nil:
		return rowskema.Null(), nil
	case bool:
		if x {
			return rowskema.Int32Value(1), nil
		}
		return rowskema.Int32Value(0), nil
	case j.Number:
		return numberValue(string(x), want)
	case string:
		if want == rowskema.KindBlob {
			if b, err := base64.StdEncoding.DecodeString(x); err == nil {
				return rowskema.BlobValue(b), nil
			}
		}
		return rowskema.TextValue(x), nil
	default:
		b, err := j.Marshal(x)
		if err != nil {
			return rowskema.Null(), err
		}
		return rowskema.TextValue(string(b)), nil
	}
}

// numberValue sizes a JSON number for a column of kind want. A whole-number
// literal outside int64 is only accepted by float columns.
func numberValue(s string, want rowskema.Kind) (rowskema.Value, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if errors.Is(err, strconv.ErrRange) && !want.IsFloat() {
		return rowskema.Null(), fmt.Errorf("integer %s overflows int64", s)
	}
	if err == nil {
		switch want {
		case rowskema.KindInt16:
			if n >= math.MinInt16 && n <= math.MaxInt16 {
				return rowskema.Int16Value(int16(n)), nil
			}
		case rowskema.KindInt32:
			if n >= math.MinInt32 && n <= math.MaxInt32 {
				return rowskema.Int32Value(int32(n)), nil
			}
		case rowskema.KindFloat32:
			return rowskema.Float32Value(float32(n)), nil
		case rowskema.KindFloat64:
			return rowskema.Float64Value(float64(n)), nil
		}
		return rowskema.Int64Value(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return rowskema.Null(), fmt.Errorf("bad number %q: %w", s, err)
	}
	if want == rowskema.KindFloat32 {
		return rowskema.Float32Value(float32(f)), nil
	}
	return rowskema.Float64Value(f), nil
}
