package docmodel

// Schema is the ordered, immutable field registry of a fragment type.
// It is safe for concurrent use by any number of fragments.
type Schema struct {
	name     string
	fields   []*Field
	index    map[string]int
	needsCtx bool
}

// NewSchema declares a fragment type with fields in declaration order.
// Declaration errors of any field are reported here.
func NewSchema(name string, fields ...*Field) (*Schema, error) {
	var base *Schema
	return base.Extend(name, fields...)
}

// MustSchema is like NewSchema but panics on a declaration error.
// It simplifies package-level schema declarations.
func MustSchema(name string, fields ...*Field) *Schema {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Extend declares a schema inheriting s's fields. A field whose name matches
// an inherited one replaces it at the inherited position; other fields are
// appended. A nil s extends the empty schema.
func (s *Schema) Extend(name string, fields ...*Field) (*Schema, error) {
	if name == "" {
		return nil, Errorf(EINVALID, "schema name required")
	}

	merged, index, err := mergeFields(s.Fields(), fields)
	if err != nil {
		return nil, err
	}

	out := &Schema{name: name, fields: merged, index: index}
	for _, f := range merged {
		if !f.excluded && f.RequiresContext() {
			out.needsCtx = true
		}
	}
	return out, nil
}

// Name returns the schema name.
func (s *Schema) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Fields returns a copy of the fields in declaration order.
func (s *Schema) Fields() []*Field {
	if s == nil {
		return nil
	}
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the named field.
func (s *Schema) Field(name string) (*Field, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Keys returns the names of the fields that appear in extracted records.
func (s *Schema) Keys() []string {
	if s == nil {
		return nil
	}
	return outputKeys(s.fields)
}

// RequiresContext reports whether extracting the schema needs ExtractContext.
func (s *Schema) RequiresContext() bool {
	return s != nil && s.needsCtx
}

// mergeFields overlays fields onto base. Names must be unique within fields.
func mergeFields(base, fields []*Field) ([]*Field, map[string]int, error) {
	merged := make([]*Field, len(base), len(base)+len(fields))
	copy(merged, base)
	index := make(map[string]int, len(base)+len(fields))
	for i, f := range merged {
		index[f.name] = i
	}

	declared := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f == nil {
			return nil, nil, Errorf(EINVALID, "nil field declaration")
		}
		if f.err != nil {
			return nil, nil, f.err
		}
		if declared[f.name] {
			return nil, nil, Errorf(EINVALID, "duplicate field %q", f.name)
		}
		declared[f.name] = true

		if i, ok := index[f.name]; ok {
			merged[i] = f
			continue
		}
		index[f.name] = len(merged)
		merged = append(merged, f)
	}
	return merged, index, nil
}

func outputKeys(fields []*Field) []string {
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		if !f.excluded {
			keys = append(keys, f.name)
		}
	}
	return keys
}
