package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docmodel"
	"github.com/fwojciec/docmodel/mock"
	docslog "github.com/fwojciec/docmodel/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("logs bytes and duration at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		root := docmodel.Text("root")
		inner := &mock.Parser{
			ParseFn: func(text string) (docmodel.Selector, error) {
				return root, nil
			},
		}

		parser := docslog.NewLoggingParser(inner, logger)
		sel, err := parser.Parse("<p>hello</p>")

		require.NoError(t, err)
		assert.Equal(t, root, sel)
		output := buf.String()
		assert.Contains(t, output, "msg=parse")
		assert.Contains(t, output, "bytes=12")
		assert.Contains(t, output, "duration=")
	})

	t.Run("is silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Parser{
			ParseFn: func(text string) (docmodel.Selector, error) {
				return docmodel.Text(text), nil
			},
		}

		_, err := docslog.NewLoggingParser(inner, logger).Parse("<p/>")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs source, fields and skipped", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(ctx context.Context, in *docmodel.Input) (docmodel.Result, error) {
				return docmodel.Result{Record: docmodel.Record{{Key: "a", Value: 1}, {Key: "b", Value: 2}}}, nil
			},
		}

		ext := docslog.NewLoggingExtractor(inner, logger)
		res, err := ext.Extract(context.Background(), &docmodel.Input{
			Text:     "<html></html>",
			Metadata: &docmodel.Metadata{Source: "page.html"},
		})

		require.NoError(t, err)
		assert.Len(t, res.Record, 2)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "source=page.html")
		assert.Contains(t, output, "bytes=13")
		assert.Contains(t, output, "fields=2")
		assert.Contains(t, output, "skipped=false")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(ctx context.Context, in *docmodel.Input) (docmodel.Result, error) {
				return docmodel.Result{}, errors.New("parse error")
			},
		}

		_, err := docslog.NewLoggingExtractor(inner, logger).Extract(context.Background(), nil)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "err=\"parse error\"")
	})
}

func TestLoggingSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Summarizer{
		SummarizeFn: func(ctx context.Context, text, instruction string) (string, error) {
			return "short", nil
		},
	}

	summary, err := docslog.NewLoggingSummarizer(inner, logger).Summarize(context.Background(), "long text", "")

	require.NoError(t, err)
	assert.Equal(t, "short", summary)
	output := buf.String()
	assert.Contains(t, output, "msg=summarize")
	assert.Contains(t, output, "bytes=9")
	assert.Contains(t, output, "summary_bytes=5")
}
