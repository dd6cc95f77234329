package main

import (
	"io"
	"os"

	"github.com/fwojciec/docmodel"
	"gopkg.in/yaml.v3"
)

// SchemaFile is a schema declared in YAML:
//
//	name: Listing
//	extends: ExamplePage
//	fields:
//	  - name: items
//	    css: li.item
//	    many: true
//	    model:
//	      name: Item
//	      fields:
//	        - {name: label, css: "::text"}
//	        - {name: href, xpath: ".//a/@href"}
type SchemaFile struct {
	Name    string      `yaml:"name"`
	Extends string      `yaml:"extends"`
	Fields  []FieldDecl `yaml:"fields"`
}

// FieldDecl declares one field. Exactly one of XPath, CSS, Re, Meta or
// Article selects the kind; Article names the engine.
type FieldDecl struct {
	Name    string      `yaml:"name"`
	XPath   string      `yaml:"xpath"`
	CSS     string      `yaml:"css"`
	Re      string      `yaml:"re"`
	Meta    string      `yaml:"meta"`
	Article string      `yaml:"article"`
	Filter  string      `yaml:"filter"`
	Many    bool        `yaml:"many"`
	Exclude bool        `yaml:"exclude"`
	Model   *SchemaFile `yaml:"model"`
}

// LoadSchemaFile reads and builds a schema from a YAML file.
func (deps *Dependencies) LoadSchemaFile(path string) (*docmodel.Schema, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, docmodel.Errorf(docmodel.ENOTFOUND, "schema file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return deps.DecodeSchema(f)
}

// DecodeSchema decodes a YAML schema declaration from r and builds it.
func (deps *Dependencies) DecodeSchema(r io.Reader) (*docmodel.Schema, error) {
	var sf SchemaFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil {
		return nil, docmodel.Errorf(docmodel.EINVALID, "invalid schema file: %v", err)
	}
	return deps.buildSchema(&sf)
}

func (deps *Dependencies) buildSchema(sf *SchemaFile) (*docmodel.Schema, error) {
	if sf.Name == "" {
		return nil, docmodel.Errorf(docmodel.EINVALID, "schema name required")
	}

	fields := make([]*docmodel.Field, 0, len(sf.Fields))
	for i := range sf.Fields {
		f, err := deps.declaredField(&sf.Fields[i])
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	if sf.Extends == "" {
		return docmodel.NewSchema(sf.Name, fields...)
	}
	base, err := lookupSchema(sf.Extends)
	if err != nil {
		return nil, err
	}
	return base.Extend(sf.Name, fields...)
}

func (deps *Dependencies) declaredField(d *FieldDecl) (*docmodel.Field, error) {
	var kind, expr string
	n := 0
	for _, k := range []struct{ kind, expr string }{
		{"xpath", d.XPath},
		{"css", d.CSS},
		{"re", d.Re},
		{"meta", d.Meta},
		{"article", d.Article},
	} {
		if k.expr != "" {
			kind, expr = k.kind, k.expr
			n++
		}
	}
	if n != 1 {
		return nil, docmodel.Errorf(docmodel.EINVALID, "field %q: exactly one of xpath, css, re, meta or article required", d.Name)
	}

	var extra []docmodel.FieldOption
	if d.Exclude {
		extra = append(extra, docmodel.Excluded())
	}
	if d.Model != nil {
		model, err := deps.buildSchema(d.Model)
		if err != nil {
			return nil, err
		}
		extra = append(extra, docmodel.WithModel(model))
	}

	f, err := deps.buildField(d.Name, kind, expr, d.Filter, d.Many, extra...)
	if docmodel.ErrorCode(err) == docmodel.EINVALID {
		return nil, docmodel.Errorf(docmodel.EINVALID, "field %q: %s", d.Name, docmodel.ErrorMessage(err))
	}
	return f, err
}
