package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cardsnap"
)

// Ensure LoggingEnricher implements cardsnap.Enricher.
var _ cardsnap.Enricher = (*LoggingEnricher)(nil)

// LoggingEnricher wraps an Enricher with logging.
type LoggingEnricher struct {
	next   cardsnap.Enricher
	logger *slog.Logger
}

// NewLoggingEnricher creates a new LoggingEnricher.
func NewLoggingEnricher(next cardsnap.Enricher, logger *slog.Logger) *LoggingEnricher {
	return &LoggingEnricher{next: next, logger: logger}
}

// Enrich delegates to the wrapped enricher and logs the operation.
func (e *LoggingEnricher) Enrich(ctx context.Context, card *cardsnap.Card) (out *cardsnap.Enrichment, err error) {
	defer func(begin time.Time) {
		var title string
		if out != nil {
			title = out.Title
		}
		e.logger.Info("enrich",
			"id", card.ID,
			"title", title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Enrich(ctx, card)
}
