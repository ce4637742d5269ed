package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cardsnap"
)

// Ensure LoggingSandbox implements cardsnap.Sandbox.
var _ cardsnap.Sandbox = (*LoggingSandbox)(nil)

// LoggingSandbox wraps a Sandbox with logging.
type LoggingSandbox struct {
	next   cardsnap.Sandbox
	logger *slog.Logger
}

// NewLoggingSandbox creates a new LoggingSandbox.
func NewLoggingSandbox(next cardsnap.Sandbox, logger *slog.Logger) *LoggingSandbox {
	return &LoggingSandbox{next: next, logger: logger}
}

// Open logs sandbox creation failures and delegates to the wrapped sandbox.
func (s *LoggingSandbox) Open(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("sandbox open",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Open(ctx)
}

// Render logs the card being rendered and delegates to the wrapped sandbox.
func (s *LoggingSandbox) Render(ctx context.Context, card *cardsnap.Card) (target cardsnap.Target, err error) {
	defer func(begin time.Time) {
		s.logger.Info("render",
			"id", card.ID,
			"source", card.Source,
			"bytes", len(card.Markup)+len(card.Styles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Render(ctx, card)
}

// Clear delegates to the wrapped sandbox.
func (s *LoggingSandbox) Clear(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			s.logger.Warn("sandbox clear", "err", err)
		}
	}()
	return s.next.Clear(ctx)
}

// Close delegates to the wrapped sandbox.
func (s *LoggingSandbox) Close() error {
	return s.next.Close()
}

// Ensure LoggingCapturer implements cardsnap.Capturer.
var _ cardsnap.Capturer = (*LoggingCapturer)(nil)

// LoggingCapturer wraps a Capturer with logging.
type LoggingCapturer struct {
	next   cardsnap.Capturer
	logger *slog.Logger
}

// NewLoggingCapturer creates a new LoggingCapturer.
func NewLoggingCapturer(next cardsnap.Capturer, logger *slog.Logger) *LoggingCapturer {
	return &LoggingCapturer{next: next, logger: logger}
}

// Capture logs the encoded image size and delegates to the wrapped capturer.
func (c *LoggingCapturer) Capture(ctx context.Context, target cardsnap.Target) (dataURL string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("capture",
			"bytes", len(dataURL),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Capture(ctx, target)
}
