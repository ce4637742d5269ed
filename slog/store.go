package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/cardsnap"
)

// Ensure LoggingImageStore implements cardsnap.ImageStore.
var _ cardsnap.ImageStore = (*LoggingImageStore)(nil)

// LoggingImageStore wraps an ImageStore with debug logging.
type LoggingImageStore struct {
	next   cardsnap.ImageStore
	logger *slog.Logger
}

// NewLoggingImageStore creates a new LoggingImageStore.
func NewLoggingImageStore(next cardsnap.ImageStore, logger *slog.Logger) *LoggingImageStore {
	return &LoggingImageStore{next: next, logger: logger}
}

func (s *LoggingImageStore) Save(ctx context.Context, name string, data []byte) (err error) {
	defer func() {
		s.logger.Debug("save image", "name", name, "bytes", len(data), "err", err)
	}()
	return s.next.Save(ctx, name, data)
}

func (s *LoggingImageStore) Commit() (err error) {
	defer func() {
		s.logger.Debug("commit images", "err", err)
	}()
	return s.next.Commit()
}

func (s *LoggingImageStore) Abort() (err error) {
	defer func() {
		s.logger.Debug("abort images", "err", err)
	}()
	return s.next.Abort()
}
