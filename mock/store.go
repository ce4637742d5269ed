package mock

import (
	"context"

	"github.com/fwojciec/cardsnap"
)

var _ cardsnap.ImageStore = (*ImageStore)(nil)

// ImageStore is a mock implementation of cardsnap.ImageStore.
type ImageStore struct {
	SaveFn   func(ctx context.Context, name string, data []byte) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ImageStore) Save(ctx context.Context, name string, data []byte) error {
	return s.SaveFn(ctx, name, data)
}

func (s *ImageStore) Commit() error {
	return s.CommitFn()
}

func (s *ImageStore) Abort() error {
	return s.AbortFn()
}
