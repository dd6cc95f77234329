package docmodel

import (
	"context"
	"errors"
	"fmt"
)

// ErrSkip is returned by a clean function to exclude the fragment being
// extracted. Extract catches it at the fragment boundary and reports a
// skipped Result; it never propagates to the caller of Extract.
var ErrSkip = errors.New("skip fragment")

// Result is the outcome of extracting a fragment: either a completed Record
// or a skip requested by one of the fragment's clean functions.
type Result struct {
	Record  Record
	Skipped bool
}

// Fragment is a parsed document, or a node within one, bound to a set of
// fields. A Fragment caches resolved field values and is not safe for
// concurrent use.
type Fragment struct {
	schema   *Schema
	fields   []*Field
	index    map[string]int
	text     string
	root     Selector
	metadata *Metadata

	cache   map[string]any
	ignored bool
}

// Document is a Fragment used as the root of a parsed page.
type Document = Fragment

// FragmentOption configures a Fragment.
type FragmentOption func(*fragmentOptions)

type fragmentOptions struct {
	fields   []*Field
	metadata *Metadata
}

// WithFields overlays ad-hoc fields onto the schema for one fragment only.
func WithFields(fields ...*Field) FragmentOption {
	return func(o *fragmentOptions) { o.fields = append(o.fields, fields...) }
}

// WithMetadata attaches provenance metadata. The pointer is shared, not copied.
func WithMetadata(m *Metadata) FragmentOption {
	return func(o *fragmentOptions) { o.metadata = m }
}

// NewFragment binds schema to an already selected node. A nil schema is
// allowed when the fields come from WithFields.
func NewFragment(schema *Schema, root Selector, opts ...FragmentOption) (*Fragment, error) {
	if root == nil {
		return nil, Errorf(EINVALID, "fragment requires a selection root")
	}

	var o fragmentOptions
	for _, opt := range opts {
		opt(&o)
	}

	f := &Fragment{
		schema:   schema,
		root:     root,
		metadata: o.metadata,
		cache:    make(map[string]any),
	}
	if schema != nil && len(o.fields) == 0 {
		f.fields, f.index = schema.fields, schema.index
		return f, nil
	}

	fields, index, err := mergeFields(schema.Fields(), o.fields)
	if err != nil {
		return nil, err
	}
	f.fields, f.index = fields, index
	return f, nil
}

// ParseFragment parses text with p and binds schema to the resulting tree.
// Parser errors are returned unchanged.
func ParseFragment(p Parser, schema *Schema, text string, opts ...FragmentOption) (*Fragment, error) {
	root, err := p.Parse(text)
	if err != nil {
		return nil, err
	}
	f, err := NewFragment(schema, root, opts...)
	if err != nil {
		return nil, err
	}
	f.text = text
	return f, nil
}

// Schema returns the fragment's schema, which may be nil for ad-hoc fragments.
func (f *Fragment) Schema() *Schema { return f.schema }

// Root returns the selection root.
func (f *Fragment) Root() Selector { return f.root }

// Text returns the raw text the fragment was parsed from, if any.
func (f *Fragment) Text() string { return f.text }

// Metadata returns the shared provenance metadata.
func (f *Fragment) Metadata() *Metadata { return f.metadata }

// Ignored reports whether an extraction of the fragment was skipped.
func (f *Fragment) Ignored() bool { return f.ignored }

// Keys returns the names that appear in the fragment's records.
func (f *Fragment) Keys() []string { return outputKeys(f.fields) }

// Field returns the named field, including excluded and ad-hoc fields.
func (f *Fragment) Field(name string) (*Field, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.fields[i], true
}

// Get resolves the named field without flattening composed fragments: model
// fields yield *Fragment or []*Fragment. Resolved values are cached on the
// fragment.
func (f *Fragment) Get(name string) (any, error) {
	fd, ok := f.Field(name)
	if !ok {
		return nil, Errorf(ENOTFOUND, "unknown field %q", name)
	}
	if fd.cleanCtx != nil {
		return nil, Errorf(EINVALID, "field %q has a context clean function; use GetContext", name)
	}
	return f.value(context.Background(), fd)
}

// GetContext is like Get but may run context-aware clean functions.
func (f *Fragment) GetContext(ctx context.Context, name string) (any, error) {
	fd, ok := f.Field(name)
	if !ok {
		return nil, Errorf(ENOTFOUND, "unknown field %q", name)
	}
	return f.value(ctx, fd)
}

// Extract resolves every non-excluded field in declaration order and returns
// the record. If a clean function returns ErrSkip, extraction stops, the
// fragment is marked ignored and a skipped Result is returned.
func (f *Fragment) Extract() (Result, error) {
	for _, fd := range f.fields {
		if !fd.excluded && fd.RequiresContext() {
			return Result{}, Errorf(EINVALID, "field %q requires ExtractContext", fd.name)
		}
	}
	return f.extract(context.Background(), false)
}

// ExtractContext is like Extract but runs context-aware clean functions and
// extracts composed fragments with ExtractContext. Fields are still resolved
// one at a time in declaration order.
func (f *Fragment) ExtractContext(ctx context.Context) (Result, error) {
	return f.extract(ctx, true)
}

func (f *Fragment) extract(ctx context.Context, useCtx bool) (Result, error) {
	rec := make(Record, 0, len(f.fields))
	for _, fd := range f.fields {
		if fd.excluded {
			continue
		}
		if useCtx {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}

		v, err := f.value(ctx, fd)
		if err == nil {
			v, err = fd.output(ctx, v, useCtx)
		}
		if errors.Is(err, ErrSkip) {
			f.ignored = true
			return Result{Skipped: true}, nil
		} else if err != nil {
			return Result{}, err
		}
		rec = append(rec, Entry{Key: fd.name, Value: v})
	}
	return Result{Record: rec}, nil
}

func (f *Fragment) value(ctx context.Context, fd *Field) (any, error) {
	if v, ok := f.cache[fd.name]; ok {
		return v, nil
	}
	v, err := fd.resolve(ctx, f)
	if err != nil {
		return nil, err
	}
	f.cache[fd.name] = v
	return v, nil
}

// String returns the schema name and a preview of the fragment markup.
func (f *Fragment) String() string {
	name := f.schema.Name()
	if name == "" {
		name = "Fragment"
	}
	data := []rune(f.root.Get())
	if len(data) > 40 {
		data = data[:40]
	}
	return fmt.Sprintf("<%s data=%q>", name, string(data))
}
