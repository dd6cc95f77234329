package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docmodel"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Converter docmodel.Converter
	Articles  map[string]docmodel.ArticleExtractor
	Sanitizer docmodel.Sanitizer
	Stripper  docmodel.Sanitizer

	// Constructed on first use by fields that need them.
	NewSummarizer   func() (docmodel.Summarizer, error)
	NewTokenCounter func() (docmodel.TokenCounter, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Extract records from local documents"`
	Schemas SchemasCmd `cmd:"" help:"List built-in schemas"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Schema       string   `short:"s" help:"Built-in schema name (see 'docmodel schemas')"`
	SchemaFile   string   `short:"S" name:"schema-file" type:"path" help:"YAML schema declaration file"`
	Fields       []string `short:"f" name:"field" sep:"none" help:"Ad-hoc field name=kind[+filter]:expr; name[] for many (repeatable)"`
	XML          bool     `name:"xml" help:"Parse inputs as XML instead of HTML"`
	URL          string   `short:"u" name:"url" help:"Base URL the input paths are resolved against"`
	Unique       bool     `help:"Drop duplicate records"`
	Concurrency  int      `short:"c" default:"10" help:"Concurrent extraction limit"`
	Out          string   `short:"o" help:"Write one JSON file per record into this directory instead of NDJSON to stdout"`
	Verbose      bool     `short:"v" help:"Log every extraction to stderr"`
	GeminiAPIKey string   `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key for the summary filter"`
	Model        string   `default:"${model}" env:"DOCMODEL_MODEL" help:"Gemini model for the summary and tokens filters"`
	RPS          float64  `name:"rps" default:"1" help:"Gemini requests per second for the summary filter (0 for no limit)"`
	Files        []string `arg:"" help:"Documents to extract from"`
}

// SchemasCmd is the "schemas" subcommand.
type SchemasCmd struct{}
