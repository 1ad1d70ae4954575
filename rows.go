package rowskema

// RowWriter holds one slot per schema column while a single row is built.
type RowWriter struct {
	schema *Schema
	slots  []Value
}

func newRowWriter(s *Schema) *RowWriter {
	return &RowWriter{schema: s, slots: make([]Value, s.Len())}
}

// reset clears every slot so nothing leaks into the next row.
func (w *RowWriter) reset() {
	clear(w.slots)
}

// Schema returns the schema the writer fills.
func (w *RowWriter) Schema() *Schema { return w.schema }

// Put stores a raw cell. Columns outside the schema are reported and ignored.
func (w *RowWriter) Put(name string, v Value) {
	slot, ok := w.schema.Index(name)
	if !ok {
		report(Issues{{Code: CodeUnknownColumn, Schema: w.schema.Name(), Column: name, Row: -1, Message: "column not in schema"}}, nil)
		return
	}
	w.slots[slot] = v
}

// BuildRows encodes items into a Table whose columns are the schema's columns
// in declaration order. fn writes one item's fields; every item yields exactly
// one row.
func BuildRows[T any](s *Schema, items []T, fn func(w *RowWriter, item T)) *Table {
	t := &Table{Cols: s.Columns(), Rows: make([][]Value, 0, len(items))}
	w := newRowWriter(s)
	for _, it := range items {
		w.reset()
		fn(w, it)
		row := make([]Value, len(w.slots))
		copy(row, w.slots)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// BuildRecord encodes a single item into a Record. Unset columns are left out.
func BuildRecord(s *Schema, fn func(w *RowWriter)) Record {
	w := newRowWriter(s)
	fn(w)
	rec := make(Record, len(w.slots))
	for i, v := range w.slots {
		if !v.IsNull() {
			rec[s.fields[i].Name()] = v
		}
	}
	return rec
}

// Set encodes v into the writer's slot for this column.
func (c *Column[T]) Set(w *RowWriter, v T) {
	w.Put(c.name, c.encode(v, w.schema.Name()))
}

// SetPtr is Set for optional values; nil leaves the slot unset.
func (c *Column[T]) SetPtr(w *RowWriter, v *T) {
	if v == nil {
		return
	}
	c.Set(w, *v)
}
