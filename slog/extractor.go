// Package slog provides logging decorators for the cardsnap pipeline.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/cardsnap"
)

// Ensure LoggingExtractor implements cardsnap.Extractor.
var _ cardsnap.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   cardsnap.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next cardsnap.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(sources []*cardsnap.Source) (cards []*cardsnap.Card, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"files", len(sources),
			"cards", len(cards),
			"duration", time.Since(begin),
			"err", err,
		)
		for _, c := range cards {
			e.logger.Debug("card",
				"id", c.ID,
				"source", c.Source,
				"hash", c.Hash,
				"markup_bytes", len(c.Markup),
				"style_bytes", len(c.Styles),
			)
		}
	}(time.Now())
	return e.next.Extract(sources)
}
