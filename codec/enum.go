package codec

import (
	"fmt"

	rowskema "github.com/reoring/rowskema"
)

// Case is the constraint for enumeration types: comparable values whose
// String method yields the stable wire name of the case.
type Case interface {
	comparable
	fmt.Stringer
}

// Enum returns a text codec for a closed set of cases. Encoding writes the
// case name; decoding matches the name exactly (case-sensitive) and reports
// invalid_enum for anything else. Two cases sharing a name panic.
func Enum[T Case](cases ...T) rowskema.Codec[T] {
	c := &enumCodec[T]{byName: make(map[string]T, len(cases)), names: make([]string, 0, len(cases))}
	var zero T
	for _, v := range cases {
		name := v.String()
		if _, dup := c.byName[name]; dup {
			panic(fmt.Sprintf("codec: enum %T declares case %q twice", zero, name))
		}
		c.byName[name] = v
		c.names = append(c.names, name)
	}
	c.typ = fmt.Sprintf("enum:%T", zero)
	return c
}

type enumCodec[T Case] struct {
	byName map[string]T
	names  []string
	typ    string
}

func (c *enumCodec[T]) Kind() rowskema.Kind { return rowskema.KindText }
func (c *enumCodec[T]) TypeName() string    { return c.typ }

// Cases returns the case names in declaration order.
func (c *enumCodec[T]) Cases() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *enumCodec[T]) Encode(v T) (rowskema.Value, error) {
	return rowskema.TextValue(v.String()), nil
}

func (c *enumCodec[T]) Decode(v rowskema.Value) (T, error) {
	var zero T
	s, ok := v.AsText()
	if !ok {
		return zero, rowskema.NewIssue(rowskema.CodeKindMismatch, map[string]any{"want": "text", "got": v.Kind().String()}, nil)
	}
	t, ok := c.byName[s]
	if !ok {
		return zero, rowskema.NewIssue(rowskema.CodeInvalidEnum, map[string]any{"got": s}, nil)
	}
	return t, nil
}
