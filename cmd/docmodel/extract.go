package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/docmodel"
	"github.com/fwojciec/docmodel/batch"
	"github.com/fwojciec/docmodel/bloom"
	"github.com/fwojciec/docmodel/etree"
	"github.com/fwojciec/docmodel/fs"
	"github.com/fwojciec/docmodel/goquery"
	docslog "github.com/fwojciec/docmodel/slog"
)

// Bloom filter sizing for --unique.
const (
	uniqueExpectedRecords    = 100000
	uniqueFalsePositiveRate  = 0.001
	progressSourceMaxDisplay = 50
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	schema, err := c.schema(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmodel.ErrorMessage(err))
		return err
	}

	var parser docmodel.Parser = goquery.NewParser()
	if c.XML {
		parser = etree.NewParser()
	} else if err := goquery.ValidateSchema(schema); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmodel.ErrorMessage(err))
		return err
	}

	inputs, err := fs.ReadInputs(deps.Ctx, c.Files, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmodel.ErrorMessage(err))
		return err
	}

	var extractor docmodel.Extractor = &docmodel.SchemaExtractor{
		Parser: docslog.NewLoggingParser(parser, deps.Logger),
		Schema: schema,
	}
	if c.Verbose {
		extractor = docslog.NewLoggingExtractor(extractor, deps.Logger)
	}

	runner := &batch.Runner{
		Extractor:   extractor,
		Concurrency: c.Concurrency,
	}
	if c.Unique {
		runner.Unique = bloom.NewFilter(uniqueExpectedRecords, uniqueFalsePositiveRate)
	}

	var progress batch.ProgressFunc
	if c.Verbose {
		progress = func(e batch.ProgressEvent) {
			if e.Type == batch.ProgressCompleted || e.Type == batch.ProgressSkipped {
				fmt.Fprintf(deps.Stderr, "[%d/%d] %s\n", e.Completed, e.Total, batch.TruncateSource(e.Source, progressSourceMaxDisplay))
			}
		}
	}

	res, err := runner.Run(deps.Ctx, inputs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	for _, f := range res.Failures {
		fmt.Fprintf(deps.Stderr, "failed %s: %v\n", batch.Source(f.Input), f.Err)
	}

	if c.Out != "" {
		if err := c.save(deps, res); err != nil {
			return err
		}
	} else {
		enc := json.NewEncoder(deps.Stdout)
		for _, o := range res.Outputs {
			if err := enc.Encode(o.Record); err != nil {
				return err
			}
		}
	}

	if c.Verbose || c.Out != "" {
		fmt.Fprintln(deps.Stderr, res.Summary())
	}

	if n := len(res.Failures); n > 0 {
		return fmt.Errorf("%d of %d inputs failed", n, len(inputs))
	}
	return nil
}

// schema combines the built-in or file schema, if any, with the ad-hoc fields.
func (c *ExtractCmd) schema(deps *Dependencies) (*docmodel.Schema, error) {
	if c.Schema != "" && c.SchemaFile != "" {
		return nil, docmodel.Errorf(docmodel.EINVALID, "--schema and --schema-file are mutually exclusive")
	}

	var base *docmodel.Schema
	name := "Fragment"
	switch {
	case c.Schema != "":
		s, err := lookupSchema(c.Schema)
		if err != nil {
			return nil, err
		}
		base, name = s, s.Name()
	case c.SchemaFile != "":
		s, err := deps.LoadSchemaFile(c.SchemaFile)
		if err != nil {
			return nil, err
		}
		base, name = s, s.Name()
	}

	if base == nil && len(c.Fields) == 0 {
		return nil, docmodel.Errorf(docmodel.EINVALID, "a schema or at least one field is required")
	}

	fields := make([]*docmodel.Field, 0, len(c.Fields))
	for _, decl := range c.Fields {
		f, err := deps.ParseField(decl)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	if len(fields) == 0 {
		return base, nil
	}
	return base.Extend(name, fields...)
}

func (c *ExtractCmd) save(deps *Dependencies, res *batch.Result) error {
	dir := filepath.Clean(c.Out)
	store := fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
	if err := res.Save(deps.Ctx, store, fs.OutputPath); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
