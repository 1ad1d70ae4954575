package rowskema

import (
	js "github.com/reoring/rowskema/jsonschema"
)

// Schema is the immutable set of columns describing one domain row shape. It
// is used to request a projection from the transport and to size writer rows.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// ColumnInfo is the descriptive form of one schema column.
type ColumnInfo struct {
	Name  string   `json:"name" yaml:"name"`
	Kind  string   `json:"kind" yaml:"kind"`
	Type  string   `json:"type" yaml:"type"`
	Cases []string `json:"cases,omitempty" yaml:"cases,omitempty"`
}

// NewSchema builds a schema from its complete column list. Column names are
// expected to be unique; a repeated name keeps its first declaration and the
// repetition is logged as a contract problem.
func NewSchema(name string, cols ...Field) *Schema {
	s := &Schema{
		name:   name,
		fields: make([]Field, 0, len(cols)),
		index:  make(map[string]int, len(cols)),
	}
	for _, c := range cols {
		if c == nil {
			panic("rowskema: schema " + name + " has a nil column")
		}
		if _, dup := s.index[c.Name()]; dup {
			l := Logger()
			l.Warn().Str("schema", name).Str("column", c.Name()).Msg("duplicate column name ignored")
			continue
		}
		s.index[c.Name()] = len(s.fields)
		s.fields = append(s.fields, c)
	}
	return s
}

func (s *Schema) Name() string { return s.name }
func (s *Schema) Len() int     { return len(s.fields) }

// Columns returns the column names in declaration order.
func (s *Schema) Columns() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name()
	}
	return out
}

// Fields returns the columns in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Index returns the slot of a column name within the schema.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Field looks up a column by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Describe lists every column with its wire kind and logical type.
func (s *Schema) Describe() []ColumnInfo {
	out := make([]ColumnInfo, len(s.fields))
	for i, f := range s.fields {
		out[i] = ColumnInfo{Name: f.Name(), Kind: f.Kind().String(), Type: f.TypeName(), Cases: f.cases()}
	}
	return out
}

// JSONSchema projects the row shape as an object schema. Every property is
// optional because any column may be missing from a provider's row.
func (s *Schema) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(s.fields))
	for _, f := range s.fields {
		p := &js.Schema{Description: f.TypeName()}
		switch k := f.Kind(); {
		case k.IsInteger():
			p.Type = "integer"
		case k.IsFloat():
			p.Type = "number"
		case k == KindBlob:
			p.Type = "string"
			p.ContentEncoding = "base64"
		default:
			p.Type = "string"
		}
		if cs := f.cases(); len(cs) > 0 {
			p.Enum = make([]any, len(cs))
			for i, c := range cs {
				p.Enum[i] = c
			}
		}
		props[f.Name()] = p
	}
	return &js.Schema{Title: s.name, Type: "object", Properties: props, AdditionalProperties: true}, nil
}
