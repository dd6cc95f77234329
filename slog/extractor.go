package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docmodel"
)

// Ensure LoggingExtractor implements docmodel.Extractor.
var _ docmodel.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   docmodel.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next docmodel.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(ctx context.Context, in *docmodel.Input) (res docmodel.Result, err error) {
	defer func(begin time.Time) {
		var source string
		var bytes int
		if in != nil {
			bytes = len(in.Text)
			if in.Metadata != nil {
				source = in.Metadata.Source
			}
		}
		e.logger.Info("extract",
			"source", source,
			"bytes", bytes,
			"fields", len(res.Record),
			"skipped", res.Skipped,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, in)
}
