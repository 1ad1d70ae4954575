package codec

import (
	"bytes"
	"fmt"

	j "github.com/goccy/go-json"

	rowskema "github.com/reoring/rowskema"
)

// JSON returns a lenient JSON codec over text cells for composite values.
// Unknown keys are ignored and missing keys keep their zero value, so a
// provider built against a newer or older shape still decodes. A cell holding
// the JSON literal null is treated as undecodable: absence belongs in a NULL
// cell, not in the document.
func JSON[T any]() rowskema.Codec[T] {
	var zero T
	return jsonCodec[T]{typ: fmt.Sprintf("json:%T", zero)}
}

// List is JSON for slices, the common shape for attendee or address lists.
func List[T any]() rowskema.Codec[[]T] { return JSON[[]T]() }

type jsonCodec[T any] struct{ typ string }

func (jsonCodec[T]) Kind() rowskema.Kind { return rowskema.KindText }
func (c jsonCodec[T]) TypeName() string  { return c.typ }

func (jsonCodec[T]) Encode(v T) (rowskema.Value, error) {
	b, err := j.Marshal(v)
	if err != nil {
		return rowskema.Null(), rowskema.NewIssue(rowskema.CodeEncodeFailed, nil, err)
	}
	if bytes.Equal(b, []byte("null")) {
		// nil slices, maps and pointers are absent values
		return rowskema.Null(), nil
	}
	return rowskema.TextValue(string(b)), nil
}

func (jsonCodec[T]) Decode(v rowskema.Value) (T, error) {
	var out T
	s, ok := v.AsText()
	if !ok {
		return out, rowskema.NewIssue(rowskema.CodeKindMismatch, map[string]any{"want": "text", "got": v.Kind().String()}, nil)
	}
	data := bytes.TrimSpace([]byte(s))
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return out, rowskema.NewIssue(rowskema.CodeInvalidJSON, map[string]any{"got": s}, nil)
	}
	if err := j.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, rowskema.NewIssue(rowskema.CodeInvalidJSON, nil, err)
	}
	return out, nil
}
