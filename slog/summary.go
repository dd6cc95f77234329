package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docmodel"
)

// Ensure LoggingSummarizer implements docmodel.Summarizer.
var _ docmodel.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with logging.
type LoggingSummarizer struct {
	next   docmodel.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next docmodel.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

// Summarize delegates to the wrapped summarizer and logs the operation.
func (s *LoggingSummarizer) Summarize(ctx context.Context, text, instruction string) (summary string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("summarize",
			"bytes", len(text),
			"summary_bytes", len(summary),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, text, instruction)
}
