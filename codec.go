package rowskema

// Codec converts between a domain value T and a single wire cell. Both sides
// of the plugin channel share the same Codec through a Column declaration,
// which is what keeps encode and decode symmetric.
type Codec[T any] interface {
	// Kind is the wire kind Encode produces.
	Kind() Kind
	// Encode converts a domain value into a cell. A NULL result means the value
	// itself represents absence (a nil slice for a JSON codec, for example).
	Encode(v T) (Value, error)
	// Decode converts a non-NULL cell back into T. Failures are reported as
	// Issues; callers above the Column layer never see them as errors.
	Decode(v Value) (T, error)
}

// Enumerated is implemented by codecs backed by a closed set of textual cases.
// Schema projections use it to export the allowed values.
type Enumerated interface {
	Cases() []string
}

// Described is implemented by codecs that want to expose a logical type name
// (for example "json:[]string") in schema descriptions.
type Described interface {
	TypeName() string
}

// typeName falls back to the wire kind when the codec does not describe itself.
func typeName[T any](c Codec[T]) string {
	if d, ok := c.(Described); ok {
		return d.TypeName()
	}
	return c.Kind().String()
}
