package codec

import (
	rowskema "github.com/reoring/rowskema"
)

// Convert layers a domain type B over an existing codec for A. dec runs after
// the inner decode, enc before the inner encode.
func Convert[A, B any](inner rowskema.Codec[A], name string, dec func(A) (B, error), enc func(B) (A, error)) rowskema.Codec[B] {
	return &convertCodec[A, B]{inner: inner, name: name, dec: dec, enc: enc}
}

type convertCodec[A, B any] struct {
	inner rowskema.Codec[A]
	name  string
	dec   func(A) (B, error)
	enc   func(B) (A, error)
}

func (c *convertCodec[A, B]) Kind() rowskema.Kind { return c.inner.Kind() }
func (c *convertCodec[A, B]) TypeName() string    { return c.name }

func (c *convertCodec[A, B]) Encode(b B) (rowskema.Value, error) {
	a, err := c.enc(b)
	if err != nil {
		return rowskema.Null(), err
	}
	return c.inner.Encode(a)
}

func (c *convertCodec[A, B]) Decode(v rowskema.Value) (B, error) {
	a, err := c.inner.Decode(v)
	if err != nil {
		var zero B
		return zero, err
	}
	return c.dec(a)
}
