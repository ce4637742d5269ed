package mock

import (
	"context"

	"github.com/fwojciec/cardsnap"
)

var _ cardsnap.Sandbox = (*Sandbox)(nil)

// Sandbox is a mock implementation of cardsnap.Sandbox.
type Sandbox struct {
	OpenFn   func(ctx context.Context) error
	RenderFn func(ctx context.Context, card *cardsnap.Card) (cardsnap.Target, error)
	ClearFn  func(ctx context.Context) error
	CloseFn  func() error
}

func (s *Sandbox) Open(ctx context.Context) error {
	return s.OpenFn(ctx)
}

func (s *Sandbox) Render(ctx context.Context, card *cardsnap.Card) (cardsnap.Target, error) {
	return s.RenderFn(ctx, card)
}

func (s *Sandbox) Clear(ctx context.Context) error {
	return s.ClearFn(ctx)
}

func (s *Sandbox) Close() error {
	return s.CloseFn()
}

var _ cardsnap.Target = (*Target)(nil)

// Target is a mock implementation of cardsnap.Target.
type Target struct {
	ExtentFn func(ctx context.Context) (cardsnap.Extent, error)
}

func (t *Target) Extent(ctx context.Context) (cardsnap.Extent, error) {
	return t.ExtentFn(ctx)
}

var _ cardsnap.Capturer = (*Capturer)(nil)

// Capturer is a mock implementation of cardsnap.Capturer.
type Capturer struct {
	CaptureFn func(ctx context.Context, target cardsnap.Target) (string, error)
}

func (c *Capturer) Capture(ctx context.Context, target cardsnap.Target) (string, error) {
	return c.CaptureFn(ctx, target)
}
