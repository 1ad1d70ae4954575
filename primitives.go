package rowskema

import (
	"bytes"
	"math"
)

// Bool returns the boolean codec. true encodes to an int32 1, false to 0.
// Decoding is deliberately lenient: any nonzero integer cell is true.
func Bool() Codec[bool] { return boolCodec{} }

// Int16 returns the codec for 16-bit integer cells.
func Int16() Codec[int16] { return intCodec[int16]{kind: KindInt16, lo: math.MinInt16, hi: math.MaxInt16} }

// Int32 returns the codec for 32-bit integer cells.
func Int32() Codec[int32] { return intCodec[int32]{kind: KindInt32, lo: math.MinInt32, hi: math.MaxInt32} }

// Int64 returns the codec for 64-bit integer cells.
func Int64() Codec[int64] { return intCodec[int64]{kind: KindInt64, lo: math.MinInt64, hi: math.MaxInt64} }

// Int32Of is Int32 for named integer types such as colors or counts.
func Int32Of[T ~int32]() Codec[T] {
	return intCodec[T]{kind: KindInt32, lo: math.MinInt32, hi: math.MaxInt32}
}

func Float32() Codec[float32] { return floatCodec[float32]{kind: KindFloat32} }
func Float64() Codec[float64] { return floatCodec[float64]{kind: KindFloat64} }

// Text returns the UTF-8 text codec.
func Text() Codec[string] { return textCodec[string]{} }

// TextOf is Text for named string types.
func TextOf[T ~string]() Codec[T] { return textCodec[T]{} }

// Blob returns the binary codec. Decoded slices are copies.
func Blob() Codec[[]byte] { return blobCodec{} }

type boolCodec struct{}

func (boolCodec) Kind() Kind { return KindInt32 }

func (boolCodec) Encode(v bool) (Value, error) {
	if v {
		return Int32Value(1), nil
	}
	return Int32Value(0), nil
}

func (boolCodec) Decode(v Value) (bool, error) {
	n, ok := v.AsInt64()
	if !ok {
		return false, mismatch("integer", v)
	}
	return n != 0, nil
}

type intCodec[T ~int16 | ~int32 | ~int64] struct {
	kind   Kind
	lo, hi int64
}

func (c intCodec[T]) Kind() Kind { return c.kind }

func (c intCodec[T]) Encode(v T) (Value, error) {
	switch c.kind {
	case KindInt16:
		return Int16Value(int16(v)), nil
	case KindInt32:
		return Int32Value(int32(v)), nil
	default:
		return Int64Value(int64(v)), nil
	}
}

// Decode accepts any integer kind; narrowing checks the range.
func (c intCodec[T]) Decode(v Value) (T, error) {
	n, ok := v.AsInt64()
	if !ok {
		return 0, mismatch(c.kind.String(), v)
	}
	if n < c.lo || n > c.hi {
		return 0, NewIssue(CodeOverflow, map[string]any{"want": c.kind.String(), "got": n}, nil)
	}
	return T(n), nil
}

type floatCodec[T ~float32 | ~float64] struct{ kind Kind }

func (c floatCodec[T]) Kind() Kind { return c.kind }

func (c floatCodec[T]) Encode(v T) (Value, error) {
	if c.kind == KindFloat32 {
		return Float32Value(float32(v)), nil
	}
	return Float64Value(float64(v)), nil
}

func (c floatCodec[T]) Decode(v Value) (T, error) {
	f, ok := v.AsFloat64()
	if !ok {
		return 0, mismatch(c.kind.String(), v)
	}
	return T(f), nil
}

type textCodec[T ~string] struct{}

func (textCodec[T]) Kind() Kind                 { return KindText }
func (textCodec[T]) Encode(v T) (Value, error) { return TextValue(string(v)), nil }

func (textCodec[T]) Decode(v Value) (T, error) {
	s, ok := v.AsText()
	if !ok {
		return "", mismatch(KindText.String(), v)
	}
	return T(s), nil
}

type blobCodec struct{}

func (blobCodec) Kind() Kind                      { return KindBlob }
func (blobCodec) Encode(v []byte) (Value, error) { return BlobValue(v), nil }

func (blobCodec) Decode(v Value) ([]byte, error) {
	b, ok := v.AsBlob()
	if !ok {
		return nil, mismatch(KindBlob.String(), v)
	}
	return bytes.Clone(b), nil
}

func mismatch(want string, got Value) Issues {
	return NewIssue(CodeKindMismatch, map[string]any{"want": want, "got": got.Kind().String()}, nil)
}
