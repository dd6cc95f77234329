package docmodel

import "context"

// Input is a raw document awaiting extraction.
type Input struct {
	Text     string
	Metadata *Metadata
}

// Extractor turns raw documents into records.
type Extractor interface {
	// Extract parses the input and extracts one record from it.
	// A skipped document yields a Result with Skipped set and no error.
	Extract(ctx context.Context, in *Input) (Result, error)
}

// Ensure SchemaExtractor implements Extractor at compile time.
var _ Extractor = (*SchemaExtractor)(nil)

// SchemaExtractor extracts records of one schema, parsing with Parser.
type SchemaExtractor struct {
	Parser Parser
	Schema *Schema

	// Fields are overlaid onto Schema for every extracted document.
	Fields []*Field
}

// Extract parses in.Text and runs ExtractContext on the resulting fragment.
func (e *SchemaExtractor) Extract(ctx context.Context, in *Input) (Result, error) {
	if in == nil {
		return Result{}, Errorf(EINVALID, "input required")
	}
	frag, err := ParseFragment(e.Parser, e.Schema, in.Text,
		WithFields(e.Fields...),
		WithMetadata(in.Metadata),
	)
	if err != nil {
		return Result{}, err
	}
	return frag.ExtractContext(ctx)
}
