package cardsnap

import "context"

// Extent is the full scrollable size of a rendered container, in CSS pixels,
// positioned relative to the document origin.
type Extent struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Target is a rendered card container inside a Sandbox.
type Target interface {
	// Extent measures the container. Returns ECAPTURE if the container is
	// missing from the sandbox document.
	Extent(ctx context.Context) (Extent, error)
}

// Sandbox is a single, reusable, isolated rendering surface. It is not safe
// for concurrent use: one card is rendered and captured at a time.
type Sandbox interface {
	// Open prepares the surface. It is safe to call more than once.
	// Returns ESANDBOX if the surface cannot be created.
	Open(ctx context.Context) error

	// Render replaces the sandbox document with the card's styles and
	// markup and returns once the content has had time to settle.
	Render(ctx context.Context, card *Card) (Target, error)

	// Clear replaces the sandbox document with an empty one.
	Clear(ctx context.Context) error

	// Close releases the surface.
	Close() error
}

// Capturer rasterizes a rendered Target.
type Capturer interface {
	// Capture returns the target as a PNG data URL.
	// Returns ECAPTURE if the target is missing or rasterization fails.
	Capture(ctx context.Context, target Target) (string, error)
}
