// Package slog provides logging decorators for docmodel services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docmodel"
)

// Ensure LoggingParser implements docmodel.Parser.
var _ docmodel.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging.
type LoggingParser struct {
	next   docmodel.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next docmodel.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) Parse(text string) (sel docmodel.Selector, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("parse",
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(text)
}
