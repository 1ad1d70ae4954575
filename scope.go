package rowskema

// ScopeOpt configures a WithColumns block.
type ScopeOpt struct {
	// Collect receives every cell issue in addition to the diagnostics logger.
	Collect func(Issue)
}

// Scope gives typed access to the rows of one RowSet under one Schema. It is
// only valid inside the WithColumns callback that created it.
type Scope struct {
	rs     RowSet
	schema *Schema
	// idx maps schema slot -> column position in rs, -1 when the provider did
	// not include the column. nil once the scope is closed.
	idx    []int
	row    int
	sink   func(Issue)
	warned bool
}

// WithColumns resolves every schema column against the row set's shape once,
// then runs fn. The index map is released on every exit path, including a
// panic inside fn, which is re-raised after release.
func WithColumns(rs RowSet, s *Schema, fn func(*Scope) error) error {
	return WithColumnsOpts(rs, s, ScopeOpt{}, fn)
}

// WithColumnsOpts is WithColumns with options.
func WithColumnsOpts(rs RowSet, s *Schema, opt ScopeOpt, fn func(*Scope) error) error {
	if rec, ok := rs.(Record); ok {
		rs = rec.Table()
	}
	sc := &Scope{rs: rs, schema: s, row: -1, sink: opt.Collect}
	sc.idx = make([]int, s.Len())
	for i := range sc.idx {
		sc.idx[i] = -1
	}
	for pos, name := range rs.Columns() {
		if slot, ok := s.Index(name); ok && sc.idx[slot] < 0 {
			sc.idx[slot] = pos
		}
	}
	defer sc.close()
	return fn(sc)
}

func (sc *Scope) close() {
	sc.idx = nil
	sc.rs = nil
}

// Next advances to the next row, mirroring a database cursor.
func (sc *Scope) Next() bool {
	if !sc.alive() {
		return false
	}
	if sc.row+1 >= sc.rs.Len() {
		sc.row = sc.rs.Len()
		return false
	}
	sc.row++
	return true
}

// Row returns the current row position (-1 before the first Next).
func (sc *Scope) Row() int { return sc.row }

// Len returns the number of rows in the underlying row set.
func (sc *Scope) Len() int {
	if !sc.alive() {
		return 0
	}
	return sc.rs.Len()
}

// Reset rewinds the cursor before the first row.
func (sc *Scope) Reset() { sc.row = -1 }

// Seek moves the cursor to row i; it reports false when i is out of range.
func (sc *Scope) Seek(i int) bool {
	if !sc.alive() || i < 0 || i >= sc.rs.Len() {
		return false
	}
	sc.row = i
	return true
}

// Schema returns the schema the scope was opened with.
func (sc *Scope) Schema() *Schema { return sc.schema }

// Contains reports whether the provider's row shape includes the column,
// regardless of the value in the current row.
func (sc *Scope) Contains(f Field) bool {
	return sc.position(f) >= 0
}

// Presence reports how the column appears in the current row.
func (sc *Scope) Presence(f Field) Presence {
	pos := sc.position(f)
	if pos < 0 {
		return 0
	}
	if sc.row < 0 || sc.row >= sc.rs.Len() || sc.rs.Cell(sc.row, pos).IsNull() {
		return PresenceSeen | PresenceWasNull
	}
	return PresenceSeen
}

// Missing lists the schema columns the provider did not include.
func (sc *Scope) Missing() []string {
	if !sc.alive() {
		return nil
	}
	var out []string
	for slot, pos := range sc.idx {
		if pos < 0 {
			out = append(out, sc.schema.fields[slot].Name())
		}
	}
	return out
}

func (sc *Scope) alive() bool {
	if sc.idx != nil {
		return true
	}
	if !sc.warned {
		sc.warned = true
		report(Issues{{Code: CodeScopeClosed, Row: -1, Schema: sc.schema.Name(), Message: "scope used after WithColumns returned"}}, nil)
	}
	return false
}

// position resolves a column to its position in the row shape, -1 if absent.
// Columns of another schema fall back to a name lookup.
func (sc *Scope) position(f Field) int {
	if !sc.alive() {
		return -1
	}
	if slot, ok := sc.schema.Index(f.Name()); ok {
		return sc.idx[slot]
	}
	for pos, name := range sc.rs.Columns() {
		if name == f.Name() {
			return pos
		}
	}
	return -1
}

// cell returns the current cell for f and whether the column is in the shape.
func (sc *Scope) cell(f Field) (Value, bool) {
	pos := sc.position(f)
	if pos < 0 || sc.row < 0 || sc.row >= sc.rs.Len() {
		return Null(), false
	}
	return sc.rs.Cell(sc.row, pos), true
}

// Get decodes the column in the scope's current row. Missing column, NULL
// cell and undecodable cell all return (zero, false).
func (c *Column[T]) Get(sc *Scope) (T, bool) {
	v, ok := sc.cell(c)
	if !ok {
		var zero T
		return zero, false
	}
	return c.decode(v, sc.schema.Name(), sc.row, sc.sink)
}

// Any decodes f in the current row without static typing, for tools that walk
// a schema generically.
func (sc *Scope) Any(f Field) (any, bool) {
	v, ok := sc.cell(f)
	if !ok {
		return nil, false
	}
	return f.decodeAny(v, sc.schema.Name(), sc.row, sc.sink)
}

// Ptr is Get returning nil for an absent value.
func (c *Column[T]) Ptr(sc *Scope) *T {
	v, ok := c.Get(sc)
	if !ok {
		return nil
	}
	return &v
}

// Or is Get with a fallback for absent values.
func (c *Column[T]) Or(sc *Scope, def T) T {
	if v, ok := c.Get(sc); ok {
		return v
	}
	return def
}
