package rod

import (
	"context"
	"time"

	"github.com/fwojciec/cardsnap"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Capturer defaults.
const (
	DefaultCaptureDelay = 500 * time.Millisecond
	DefaultScale        = 2.0
)

// Ensure Target implements cardsnap.Target at compile time.
var _ cardsnap.Target = (*Target)(nil)

// Target is the capture container of a rendered Sandbox document.
type Target struct {
	page *rod.Page
}

// extentJS measures the container including content overflowing its box.
const extentJS = `(id) => {
	const el = document.getElementById(id);
	if (!el) return null;
	const r = el.getBoundingClientRect();
	return {
		x: r.left + window.scrollX,
		y: r.top + window.scrollY,
		width: Math.max(el.scrollWidth, r.width),
		height: Math.max(el.scrollHeight, r.height),
	};
}`

// Extent measures the container's full scrollable size.
func (t *Target) Extent(ctx context.Context) (cardsnap.Extent, error) {
	if t == nil || t.page == nil {
		return cardsnap.Extent{}, cardsnap.Errorf(cardsnap.ECAPTURE, "target element missing in sandbox")
	}

	res, err := t.page.Context(ctx).Eval(extentJS, TargetID)
	if err != nil {
		return cardsnap.Extent{}, cardsnap.Errorf(cardsnap.ECAPTURE, "measuring target: %v", err)
	}
	if res.Value.Nil() {
		return cardsnap.Extent{}, cardsnap.Errorf(cardsnap.ECAPTURE, "target element missing in sandbox")
	}

	return cardsnap.Extent{
		X:      res.Value.Get("x").Num(),
		Y:      res.Value.Get("y").Num(),
		Width:  res.Value.Get("width").Num(),
		Height: res.Value.Get("height").Num(),
	}, nil
}

// Ensure Capturer implements cardsnap.Capturer at compile time.
var _ cardsnap.Capturer = (*Capturer)(nil)

// Capturer screenshots a Target as a transparent PNG at a fixed scale.
type Capturer struct {
	delay time.Duration
	scale float64
}

// CapturerOption configures a Capturer.
type CapturerOption func(*Capturer)

// WithCaptureDelay sets the wait before rasterizing, for late resource loads.
func WithCaptureDelay(d time.Duration) CapturerOption {
	return func(c *Capturer) {
		c.delay = d
	}
}

// WithScale sets the output scale factor. Defaults to 2 for high-density output.
func WithScale(scale float64) CapturerOption {
	return func(c *Capturer) {
		c.scale = scale
	}
}

// NewCapturer creates a new Capturer.
func NewCapturer(opts ...CapturerOption) *Capturer {
	c := &Capturer{
		delay: DefaultCaptureDelay,
		scale: DefaultScale,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Capture rasterizes the target clipped to its full extent so overflowing
// content is included.
func (c *Capturer) Capture(ctx context.Context, target cardsnap.Target) (string, error) {
	t, ok := target.(*Target)
	if !ok || t == nil || t.page == nil {
		return "", cardsnap.Errorf(cardsnap.ECAPTURE, "target element missing in sandbox")
	}

	if err := wait(ctx, c.delay); err != nil {
		return "", err
	}

	ext, err := t.Extent(ctx)
	if err != nil {
		return "", err
	}
	if ext.Width <= 0 || ext.Height <= 0 {
		return "", cardsnap.Errorf(cardsnap.ECAPTURE, "target element has no size")
	}

	page := t.page.Context(ctx)

	alpha := 0.0
	if err := (proto.EmulationSetDefaultBackgroundColorOverride{
		Color: &proto.DOMRGBA{A: &alpha},
	}).Call(page); err != nil {
		return "", cardsnap.Errorf(cardsnap.ECAPTURE, "clearing background: %v", err)
	}

	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      ext.X,
			Y:      ext.Y,
			Width:  ext.Width,
			Height: ext.Height,
			Scale:  c.scale,
		},
		FromSurface:           true,
		CaptureBeyondViewport: true,
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", cardsnap.Errorf(cardsnap.ECAPTURE, "screenshot failed: %v", err)
	}

	return cardsnap.EncodeDataURL(cardsnap.MIMEPNG, data), nil
}
