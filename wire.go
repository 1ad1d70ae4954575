package rowskema

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind enumerates the primitive cell kinds the plugin channel can carry.
// The set is closed; richer types are derived on top of these by codecs.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindText
	KindBlob
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// IsInteger reports whether k is one of the fixed-width integer kinds.
func (k Kind) IsInteger() bool { return k == KindInt16 || k == KindInt32 || k == KindInt64 }

// IsFloat reports whether k is one of the floating point kinds.
func (k Kind) IsFloat() bool { return k == KindFloat32 || k == KindFloat64 }

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k := KindNull; k <= KindBlob; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return KindNull, false
}

// Value is a single wire cell. The zero Value is NULL.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    []byte
}

func Null() Value                  { return Value{} }
func Int16Value(v int16) Value     { return Value{kind: KindInt16, i: int64(v)} }
func Int32Value(v int32) Value     { return Value{kind: KindInt32, i: int64(v)} }
func Int64Value(v int64) Value     { return Value{kind: KindInt64, i: v} }
func Float32Value(v float32) Value { return Value{kind: KindFloat32, f: float64(v)} }
func Float64Value(v float64) Value { return Value{kind: KindFloat64, f: v} }
func TextValue(v string) Value     { return Value{kind: KindText, s: v} }

// BlobValue copies v so later mutation by the caller does not leak into the cell.
func BlobValue(v []byte) Value {
	if v == nil {
		return Value{kind: KindBlob, b: []byte{}}
	}
	return Value{kind: KindBlob, b: bytes.Clone(v)}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsInt64 returns the cell as int64 when it holds any integer kind.
func (v Value) AsInt64() (int64, bool) {
	if v.kind.IsInteger() {
		return v.i, true
	}
	return 0, false
}

// AsFloat64 returns the cell as float64 for float and integer kinds.
func (v Value) AsFloat64() (float64, bool) {
	switch {
	case v.kind.IsFloat():
		return v.f, true
	case v.kind.IsInteger():
		return float64(v.i), true
	}
	return 0, false
}

func (v Value) AsText() (string, bool) {
	if v.kind == KindText {
		return v.s, true
	}
	return "", false
}

// AsBlob returns the underlying bytes; callers must not modify them.
func (v Value) AsBlob() ([]byte, bool) {
	if v.kind == KindBlob {
		return v.b, true
	}
	return nil, false
}

// Any returns the natural Go representation of the cell (nil for NULL).
func (v Value) Any() any {
	switch v.kind {
	case KindInt16:
		return int16(v.i)
	case KindInt32:
		return int32(v.i)
	case KindInt64:
		return v.i
	case KindFloat32:
		return float32(v.f)
	case KindFloat64:
		return v.f
	case KindText:
		return v.s
	case KindBlob:
		return v.b
	default:
		return nil
	}
}

// Equal compares kind and payload. NaN floats compare equal to each other.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch {
	case v.kind.IsInteger():
		return v.i == o.i
	case v.kind.IsFloat():
		if math.IsNaN(v.f) && math.IsNaN(o.f) {
			return true
		}
		return v.f == o.f
	case v.kind == KindText:
		return v.s == o.s
	case v.kind == KindBlob:
		return bytes.Equal(v.b, o.b)
	}
	return true
}

func (v Value) String() string {
	switch {
	case v.kind == KindNull:
		return "NULL"
	case v.kind == KindBlob:
		return fmt.Sprintf("blob(%d)", len(v.b))
	case v.kind == KindText:
		return strconv.Quote(v.s)
	default:
		return fmt.Sprintf("%s(%v)", v.kind, v.Any())
	}
}

// RowSet is the shape of a fetched result as handed over by the transport.
// Rows are positional; columns are addressed by name through Columns.
type RowSet interface {
	Columns() []string
	Len() int
	Cell(row, col int) Value
}

// Table is an in-memory RowSet, the output of BuildRows.
type Table struct {
	Cols []string
	Rows [][]Value
}

func (t *Table) Columns() []string { return t.Cols }
func (t *Table) Len() int          { return len(t.Rows) }

// Cell returns NULL for positions outside a short row.
func (t *Table) Cell(row, col int) Value {
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return Null()
	}
	return r[col]
}

// Record is a single row keyed by column name, used for refresh payloads.
// A key holding NULL counts as a present column with an empty cell.
type Record map[string]Value

// Columns returns the record keys in sorted order.
func (r Record) Columns() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len is always one: a record is exactly one row, even when empty.
func (r Record) Len() int { return 1 }

func (r Record) Cell(row, col int) Value {
	names := r.Columns()
	if row != 0 || col < 0 || col >= len(names) {
		return Null()
	}
	return r[names[col]]
}

// Table converts the record into a one-row Table with sorted columns.
func (r Record) Table() *Table {
	names := r.Columns()
	row := make([]Value, len(names))
	for i, n := range names {
		row[i] = r[n]
	}
	return &Table{Cols: names, Rows: [][]Value{row}}
}
