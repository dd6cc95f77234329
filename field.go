package docmodel

import (
	"context"
	"regexp"
)

// Kind identifies the selection rule a field uses.
type Kind int

// Field kinds.
const (
	KindXPath Kind = iota
	KindCSS
	KindRegex
	KindMetadata
	KindNoop
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindXPath:
		return "xpath"
	case KindCSS:
		return "css"
	case KindRegex:
		return "regex"
	case KindMetadata:
		return "metadata"
	case KindNoop:
		return "noop"
	}
	return "unknown"
}

// CleanFunc shapes a raw selection into a field value. It may return ErrSkip
// to exclude the fragment being extracted.
type CleanFunc func(f *Fragment, sel SelectorList) (any, error)

// CleanContextFunc is a CleanFunc that may block on external work, such as a
// remote lookup. Fields using one can only be extracted with ExtractContext.
type CleanContextFunc func(ctx context.Context, f *Fragment, sel SelectorList) (any, error)

// ValueFunc transforms a metadata attribute value.
type ValueFunc func(v any) (any, error)

// Field binds one named output to a selection rule and a clean function.
// Fields are immutable once declared and may be shared across schemas.
type Field struct {
	kind      Kind
	name      string
	rule      string
	re        *regexp.Regexp
	clean     CleanFunc
	cleanCtx  CleanContextFunc
	transform ValueFunc
	model     *Schema
	many      bool
	excluded  bool

	// err holds the first declaration error, reported by NewSchema.
	err error
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// WithClean sets the function shaping the raw selection into a value.
func WithClean(fn CleanFunc) FieldOption {
	return func(f *Field) {
		if f.cleanCtx != nil {
			f.fail("field %q declares both a clean and a context clean function", f.name)
		}
		f.clean = fn
	}
}

// WithCleanContext sets a clean function that may block on external work.
func WithCleanContext(fn CleanContextFunc) FieldOption {
	return func(f *Field) {
		if f.clean != nil {
			f.fail("field %q declares both a clean and a context clean function", f.name)
		}
		f.cleanCtx = fn
	}
}

// WithModel wraps selected nodes into fragments of schema. Without Many only
// the first selected node is used and at least one node must match.
func WithModel(schema *Schema) FieldOption {
	return func(f *Field) {
		if schema == nil {
			f.fail("field %q declares a nil model", f.name)
		}
		f.model = schema
	}
}

// Many makes the field produce every match instead of the first one.
func Many() FieldOption {
	return func(f *Field) { f.many = true }
}

// Excluded keeps the field readable through Get but out of extracted records.
func Excluded() FieldOption {
	return func(f *Field) { f.excluded = true }
}

// WithTransform sets the function applied to a metadata attribute value.
func WithTransform(fn ValueFunc) FieldOption {
	return func(f *Field) { f.transform = fn }
}

// XPath declares a field selecting nodes with an XPath expression.
func XPath(name, expr string, opts ...FieldOption) *Field {
	return newSelectorField(KindXPath, name, expr, opts)
}

// CSS declares a field selecting nodes with a CSS selector.
func CSS(name, selector string, opts ...FieldOption) *Field {
	return newSelectorField(KindCSS, name, selector, opts)
}

// Re declares a field matching pattern against the serialized fragment.
// Without a clean function the field yields the first match, or nil.
func Re(name, pattern string, opts ...FieldOption) *Field {
	f := newSelectorField(KindRegex, name, pattern, opts)
	re, err := regexp.Compile(pattern)
	if err != nil {
		f.fail("field %q has invalid regex %q: %v", name, pattern, err)
		return f
	}
	f.re = re
	return f
}

// Meta declares a field reading a metadata attribute (MetaURL, MetaDomain or
// MetaSource) instead of the document tree.
func Meta(name, attr string, opts ...FieldOption) *Field {
	f := newField(KindMetadata, name, attr, opts)
	if !isMetadataAttr(attr) {
		f.fail("field %q reads unknown metadata attribute %q", name, attr)
	}
	f.checkPlain()
	return f
}

// Noop declares a field whose clean function receives the fragment's
// selection root as its only selected node.
func Noop(name string, opts ...FieldOption) *Field {
	f := newField(KindNoop, name, "", opts)
	if f.clean == nil && f.cleanCtx == nil {
		f.fail("noop field %q requires a clean function", name)
	}
	if f.transform != nil {
		f.fail("field %q: transform applies to metadata fields only", name)
	}
	if f.model != nil || f.many {
		f.fail("field %q: noop fields do not compose models", name)
	}
	return f
}

func newField(kind Kind, name, rule string, opts []FieldOption) *Field {
	f := &Field{kind: kind, name: name, rule: rule}
	if name == "" {
		f.fail("%s field requires a name", kind)
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func newSelectorField(kind Kind, name, rule string, opts []FieldOption) *Field {
	f := newField(kind, name, rule, opts)
	if rule == "" {
		f.fail("field %q requires a %s rule", name, kind)
	}
	if f.transform != nil {
		f.fail("field %q: transform applies to metadata fields only", name)
	}
	return f
}

func (f *Field) checkPlain() {
	if f.clean != nil || f.cleanCtx != nil {
		f.fail("field %q: metadata fields take a transform, not a clean function", f.name)
	}
	if f.model != nil || f.many {
		f.fail("field %q: metadata fields do not compose models", f.name)
	}
}

func (f *Field) fail(format string, args ...any) {
	if f.err == nil {
		f.err = Errorf(EINVALID, format, args...)
	}
}

// Name returns the output key of the field.
func (f *Field) Name() string { return f.name }

// Kind returns the selection rule kind.
func (f *Field) Kind() Kind { return f.kind }

// Rule returns the selection expression or metadata attribute name.
func (f *Field) Rule() string { return f.rule }

// Model returns the schema of composed sub-fragments, if any.
func (f *Field) Model() *Schema { return f.model }

// IsMany reports whether the field produces every match.
func (f *Field) IsMany() bool { return f.many }

// IsExcluded reports whether the field is left out of extracted records.
func (f *Field) IsExcluded() bool { return f.excluded }

// Err returns the declaration error of the field, if any.
func (f *Field) Err() error { return f.err }

// RequiresContext reports whether resolving the field, or any sub-model it
// composes, needs a context-aware clean function.
func (f *Field) RequiresContext() bool {
	if f.cleanCtx != nil {
		return true
	}
	return f.model != nil && f.model.RequiresContext()
}

// selection runs the field's rule against the fragment's selection root.
func (f *Field) selection(frag *Fragment) (SelectorList, error) {
	switch f.kind {
	case KindXPath:
		return frag.root.XPath(f.rule)
	case KindCSS:
		return frag.root.CSS(f.rule)
	case KindRegex:
		matches := frag.root.Re(f.re)
		sel := make(SelectorList, 0, len(matches))
		for _, m := range matches {
			sel = append(sel, Text(m))
		}
		return sel, nil
	case KindNoop:
		return SelectorList{frag.root}, nil
	}
	return nil, Errorf(EINTERNAL, "field %q: no selection for %s fields", f.name, f.kind)
}

// resolve computes the model-or-raw value of the field for frag.
func (f *Field) resolve(ctx context.Context, frag *Fragment) (any, error) {
	if f.kind == KindMetadata {
		v := frag.metadata.Attr(f.rule)
		if f.transform != nil {
			return f.transform(v)
		}
		return v, nil
	}

	sel, err := f.selection(frag)
	if err != nil {
		return nil, err
	}

	switch {
	case f.cleanCtx != nil:
		return f.cleanCtx(ctx, frag, sel)
	case f.clean != nil:
		return f.clean(frag, sel)
	}
	return f.defaultClean(frag, sel)
}

func (f *Field) defaultClean(frag *Fragment, sel SelectorList) (any, error) {
	switch {
	case f.model != nil && f.many:
		out := make([]*Fragment, 0, len(sel))
		for _, node := range sel {
			sub, err := NewFragment(f.model, node, WithMetadata(frag.metadata))
			if err != nil {
				return nil, err
			}
			out = append(out, sub)
		}
		return out, nil
	case f.model != nil:
		node, ok := sel.First()
		if !ok {
			return nil, Errorf(ENOTFOUND, "missing required node for sub-model field %q", f.name)
		}
		return NewFragment(f.model, node, WithMetadata(frag.metadata))
	case f.many:
		return sel.GetAll(), nil
	}
	if v, ok := sel.Get(); ok {
		return v, nil
	}
	return nil, nil
}

// output flattens a resolved value: composed fragments are replaced by their
// extracted records. Skipped sub-fragments become nil records, keeping
// their position in lists.
func (f *Field) output(ctx context.Context, v any, useCtx bool) (any, error) {
	if f.model == nil {
		return v, nil
	}

	extract := func(sub *Fragment) (Result, error) {
		if useCtx {
			return sub.ExtractContext(ctx)
		}
		return sub.Extract()
	}

	switch v := v.(type) {
	case *Fragment:
		res, err := extract(v)
		if err != nil || res.Skipped {
			return nil, err
		}
		return res.Record, nil
	case []*Fragment:
		out := make([]Record, 0, len(v))
		for _, sub := range v {
			res, err := extract(sub)
			if err != nil {
				return nil, err
			}
			if res.Skipped {
				out = append(out, nil)
				continue
			}
			out = append(out, res.Record)
		}
		return out, nil
	case nil:
		return nil, nil
	}
	return nil, Errorf(EINVALID, "field %q: clean returned %T, want fragments of %q", f.name, v, f.model.Name())
}
