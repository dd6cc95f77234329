package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docmodel"
	"github.com/fwojciec/docmodel/bluemonday"
	"github.com/fwojciec/docmodel/gemini"
	"github.com/fwojciec/docmodel/htmltomarkdown"
	"github.com/fwojciec/docmodel/rate"
	"github.com/fwojciec/docmodel/readability"
	docslog "github.com/fwojciec/docmodel/slog"
	"github.com/fwojciec/docmodel/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docmodel"),
		kong.Description("Extract structured records from HTML and XML documents"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{"model": gemini.DefaultModel},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docmodel --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Extract.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Converter = htmltomarkdown.NewConverter()
	deps.Sanitizer = bluemonday.NewSanitizer()
	deps.Stripper = bluemonday.NewStrictSanitizer()
	deps.Articles = map[string]docmodel.ArticleExtractor{
		"trafilatura": trafilatura.NewExtractor(),
		"readability": readability.NewExtractor(),
	}
	deps.NewSummarizer = sync.OnceValues(func() (docmodel.Summarizer, error) {
		return newSummarizer(ctx, cli.Extract.GeminiAPIKey, cli.Extract.Model, cli.Extract.RPS, deps.Logger, stderr)
	})
	deps.NewTokenCounter = sync.OnceValues(func() (docmodel.TokenCounter, error) {
		tc, err := gemini.NewTokenCounter(cli.Extract.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		return tc, nil
	})

	return kongCtx.Run(deps)
}

func newSummarizer(ctx context.Context, apiKey, model string, rps float64, logger *slog.Logger, stderr io.Writer) (docmodel.Summarizer, error) {
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	limited := rate.NewSummarizer(gemini.NewSummarizer(client, model), rps)
	return docslog.NewLoggingSummarizer(limited, logger), nil
}
