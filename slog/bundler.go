package slog

import (
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/cardsnap"
)

// Ensure LoggingBundler implements cardsnap.Bundler.
var _ cardsnap.Bundler = (*LoggingBundler)(nil)

// LoggingBundler wraps a Bundler with logging.
type LoggingBundler struct {
	next   cardsnap.Bundler
	logger *slog.Logger
}

// NewLoggingBundler creates a new LoggingBundler.
func NewLoggingBundler(next cardsnap.Bundler, logger *slog.Logger) *LoggingBundler {
	return &LoggingBundler{next: next, logger: logger}
}

// Bundle delegates to the wrapped bundler and logs the operation.
func (b *LoggingBundler) Bundle(w io.Writer, cards []*cardsnap.Card) (n int, err error) {
	defer func(begin time.Time) {
		b.logger.Info("bundle",
			"cards", len(cards),
			"entries", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Bundle(w, cards)
}
