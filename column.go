package rowskema

import (
	"fmt"
)

// Field is the untyped view of a Column used by schemas and scopes.
type Field interface {
	Name() string
	Kind() Kind
	TypeName() string
	cases() []string
	decodeAny(v Value, schema string, row int, sink func(Issue)) (any, bool)
}

// Column pairs a stable wire name with the codec for its values. Columns are
// declared once per domain contract and shared by the reading and writing side.
type Column[T any] struct {
	name  string
	codec Codec[T]
}

// NewColumn declares a column. An empty name or a nil codec is a broken
// contract and panics at declaration time.
func NewColumn[T any](name string, c Codec[T]) *Column[T] {
	if name == "" {
		panic("rowskema: column name must not be empty")
	}
	if c == nil {
		panic(fmt.Sprintf("rowskema: column %q declared without a codec", name))
	}
	return &Column[T]{name: name, codec: c}
}

func (c *Column[T]) Name() string     { return c.name }
func (c *Column[T]) Kind() Kind       { return c.codec.Kind() }
func (c *Column[T]) Codec() Codec[T]  { return c.codec }
func (c *Column[T]) TypeName() string { return typeName(c.codec) }
func (c *Column[T]) String() string   { return c.name + ":" + c.TypeName() }

func (c *Column[T]) cases() []string {
	if e, ok := c.codec.(Enumerated); ok {
		return e.Cases()
	}
	return nil
}

// Read decodes the column from a Record. It returns false when the key is
// absent, the cell is NULL or the cell cannot be decoded.
func (c *Column[T]) Read(r Record) (T, bool) {
	v, ok := r[c.name]
	if !ok {
		var zero T
		return zero, false
	}
	return c.decode(v, "", -1, nil)
}

// Write encodes a possibly-absent value. nil yields NULL.
func (c *Column[T]) Write(v *T) Value {
	if v == nil {
		return Null()
	}
	return c.encode(*v, "")
}

// decode is the single place where cell failures are absorbed: NULL short
// circuits, codec errors and codec panics become (zero, false) plus a report.
func (c *Column[T]) decode(v Value, schema string, row int, sink func(Issue)) (out T, ok bool) {
	if v.IsNull() {
		return out, false
	}
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out, ok = zero, false
			err := NewIssue(CodeDecodePanic, nil, fmt.Errorf("%v", r))
			report(locate(err, schema, c.name, row), sink)
		}
	}()
	t, err := c.codec.Decode(v)
	if err != nil {
		report(locate(err, schema, c.name, row), sink)
		var zero T
		return zero, false
	}
	return t, true
}

func (c *Column[T]) decodeAny(v Value, schema string, row int, sink func(Issue)) (any, bool) {
	t, ok := c.decode(v, schema, row, sink)
	if !ok {
		return nil, false
	}
	return t, true
}

// encode applies the codec; failures degrade to NULL with a report.
func (c *Column[T]) encode(v T, schema string) (out Value) {
	defer func() {
		if r := recover(); r != nil {
			out = Null()
			err := NewIssue(CodeEncodeFailed, nil, fmt.Errorf("%v", r))
			report(locate(err, schema, c.name, -1), nil)
		}
	}()
	cell, err := c.codec.Encode(v)
	if err != nil {
		report(locate(err, schema, c.name, -1), nil)
		return Null()
	}
	return cell
}
