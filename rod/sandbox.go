package rod

import (
	"context"
	"time"

	"github.com/fwojciec/cardsnap"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Sandbox defaults.
const (
	DefaultSettle         = 2 * time.Second
	DefaultViewportWidth  = 1440
	DefaultViewportHeight = 1440
)

// Ensure Sandbox implements cardsnap.Sandbox at compile time.
var _ cardsnap.Sandbox = (*Sandbox)(nil)

// Sandbox renders cards in a single headless Chrome tab. The tab is wide
// enough that cards never switch to a mobile layout.
//
// Sandbox is not safe for concurrent use.
type Sandbox struct {
	manager   *BrowserManager
	browser   *rod.Browser
	page      *rod.Page
	sanitizer cardsnap.Sanitizer
	settle    time.Duration
	width     int
	height    int
	closed    bool
}

// SandboxOption configures a Sandbox.
type SandboxOption func(*Sandbox)

// WithSettle sets how long Render waits after writing the document, giving
// images and fonts time to load.
func WithSettle(d time.Duration) SandboxOption {
	return func(s *Sandbox) {
		s.settle = d
	}
}

// WithViewport sets the tab size in CSS pixels.
func WithViewport(width, height int) SandboxOption {
	return func(s *Sandbox) {
		s.width = width
		s.height = height
	}
}

// WithSanitizer sets a sanitizer applied to card markup before rendering.
// Embedded <style> elements are stripped whether or not one is set.
func WithSanitizer(san cardsnap.Sanitizer) SandboxOption {
	return func(s *Sandbox) {
		s.sanitizer = san
	}
}

// NewSandbox creates a Sandbox on top of a BrowserManager.
// The browser and tab are started lazily by Open.
func NewSandbox(manager *BrowserManager, opts ...SandboxOption) *Sandbox {
	s := &Sandbox{
		manager: manager,
		settle:  DefaultSettle,
		width:   DefaultViewportWidth,
		height:  DefaultViewportHeight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates the sandbox tab, or a new one if the manager has recycled
// the browser since the last call.
func (s *Sandbox) Open(ctx context.Context) error {
	if s.closed {
		return cardsnap.Errorf(cardsnap.ESANDBOX, "sandbox closed")
	}
	if s.manager == nil {
		return cardsnap.Errorf(cardsnap.ESANDBOX, "sandbox environment not ready")
	}

	browser, err := s.manager.Browser()
	if err != nil {
		if cardsnap.ErrorCode(err) == cardsnap.ESANDBOX {
			return err
		}
		return cardsnap.Errorf(cardsnap.ESANDBOX, "sandbox environment not ready: %v", err)
	}
	if s.page != nil && s.browser == browser {
		return nil
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return cardsnap.Errorf(cardsnap.ESANDBOX, "creating sandbox tab: %v", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             s.width,
		Height:            s.height,
		DeviceScaleFactor: 1,
	}); err != nil {
		_ = page.Close()
		return cardsnap.Errorf(cardsnap.ESANDBOX, "sizing sandbox tab: %v", err)
	}

	s.browser = browser
	s.page = page
	return nil
}

// Render writes the card document into the tab and waits for it to settle.
func (s *Sandbox) Render(ctx context.Context, card *cardsnap.Card) (cardsnap.Target, error) {
	if err := s.Open(ctx); err != nil {
		return nil, err
	}

	doc, err := BuildDocument(card, s.sanitizer)
	if err != nil {
		return nil, cardsnap.Errorf(cardsnap.ECAPTURE, "preparing card markup: %v", err)
	}

	if err := s.page.Context(ctx).SetDocumentContent(doc); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cardsnap.Errorf(cardsnap.ECAPTURE, "writing sandbox document: %v", err)
	}
	s.manager.IncrementRenderCount()

	if err := wait(ctx, s.settle); err != nil {
		return nil, err
	}

	return &Target{page: s.page}, nil
}

// Clear replaces the tab content with an empty document.
func (s *Sandbox) Clear(ctx context.Context) error {
	if s.page == nil {
		return nil
	}
	return s.page.Context(ctx).SetDocumentContent("")
}

// Close closes the tab. The browser itself belongs to the BrowserManager.
// Close is safe to call multiple times.
func (s *Sandbox) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.page == nil {
		return nil
	}
	err := s.page.Close()
	s.page = nil
	return err
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
