package main

import (
	"strings"

	"github.com/fwojciec/docmodel"
)

// ParseField parses an ad-hoc field declaration of the form
// name=kind[+filter]:expr. A name ending in "[]" declares a many field.
//
// Kinds are xpath, css, re, meta (expr is a metadata attribute) and article
// (expr names the engine: trafilatura, the default, or readability).
// Filters are markdown, outline, sanitize, strip, summary and tokens.
func (deps *Dependencies) ParseField(decl string) (*docmodel.Field, error) {
	name, rest, ok := strings.Cut(decl, "=")
	if !ok || name == "" {
		return nil, docmodel.Errorf(docmodel.EINVALID, "invalid field %q: expected name=kind:expr", decl)
	}
	kindSpec, expr, ok := strings.Cut(rest, ":")
	if !ok {
		return nil, docmodel.Errorf(docmodel.EINVALID, "invalid field %q: expected name=kind:expr", decl)
	}
	kind, filter, _ := strings.Cut(kindSpec, "+")

	many := strings.HasSuffix(name, "[]")
	name = strings.TrimSuffix(name, "[]")
	f, err := deps.buildField(name, kind, expr, filter, many)
	if docmodel.ErrorCode(err) == docmodel.EINVALID {
		return nil, docmodel.Errorf(docmodel.EINVALID, "invalid field %q: %s", decl, docmodel.ErrorMessage(err))
	}
	return f, err
}

// buildField constructs a field of the named kind. Extra options are applied
// after the many and filter options.
func (deps *Dependencies) buildField(name, kind, expr, filter string, many bool, extra ...docmodel.FieldOption) (*docmodel.Field, error) {
	var opts []docmodel.FieldOption
	if many {
		opts = append(opts, docmodel.Many())
	}

	if filter != "" {
		if kind == "meta" || kind == "article" {
			return nil, docmodel.Errorf(docmodel.EINVALID, "%s fields take no filter", kind)
		}
		opt, err := deps.filter(filter, many)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	opts = append(opts, extra...)

	var f *docmodel.Field
	switch kind {
	case "xpath":
		f = docmodel.XPath(name, expr, opts...)
	case "css":
		f = docmodel.CSS(name, expr, opts...)
	case "re":
		f = docmodel.Re(name, expr, opts...)
	case "meta":
		f = docmodel.Meta(name, expr, opts...)
	case "article":
		if expr == "" {
			expr = "trafilatura"
		}
		ext, ok := deps.Articles[expr]
		if !ok {
			return nil, docmodel.Errorf(docmodel.EINVALID, "unknown article engine %q", expr)
		}
		f = docmodel.Noop(name, append(opts, docmodel.WithClean(docmodel.ArticleClean(ext)))...)
	default:
		return nil, docmodel.Errorf(docmodel.EINVALID, "unknown kind %q", kind)
	}

	if err := f.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

func (deps *Dependencies) filter(name string, many bool) (docmodel.FieldOption, error) {
	switch name {
	case "markdown":
		if many {
			return docmodel.WithClean(docmodel.MarkdownAllClean(deps.Converter)), nil
		}
		return docmodel.WithClean(docmodel.MarkdownClean(deps.Converter)), nil
	case "sanitize":
		return docmodel.WithClean(docmodel.SanitizeClean(deps.Sanitizer, many)), nil
	case "strip":
		return docmodel.WithClean(docmodel.SanitizeClean(deps.Stripper, many)), nil
	case "outline":
		return docmodel.WithClean(docmodel.OutlineClean(deps.Converter)), nil
	case "summary":
		s, err := deps.NewSummarizer()
		if err != nil {
			return nil, err
		}
		return docmodel.WithCleanContext(docmodel.SummaryClean(s, "")), nil
	case "tokens":
		tc, err := deps.NewTokenCounter()
		if err != nil {
			return nil, err
		}
		return docmodel.WithCleanContext(docmodel.TokenCountClean(tc)), nil
	}
	return nil, docmodel.Errorf(docmodel.EINVALID, "unknown filter %q", name)
}
