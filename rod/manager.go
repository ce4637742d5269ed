package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/cardsnap"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxRenders is the number of card renders a browser serves before it
// is replaced.
const DefaultMaxRenders = 75

// BrowserManager owns the headless Chrome process behind a Sandbox.
//
// Chrome is launched on the first call to Browser, so a manager that is never
// asked for a browser never starts one. Writing many documents into one tab
// grows Chrome's memory, so the process is replaced every maxRenders renders.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu         sync.Mutex
	browser    *rod.Browser
	launcher   *launcher.Launcher
	renders    int
	maxRenders int
	bin        string
	closed     bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxRenders sets how many renders a browser serves before replacement.
func WithMaxRenders(n int) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxRenders = n
	}
}

// WithBrowserBin sets an explicit Chrome/Chromium binary.
// By default rod looks up a local install or downloads one.
func WithBrowserBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// NewBrowserManager returns a manager that launches Chrome on demand.
// Close must be called once the manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) *BrowserManager {
	bm := &BrowserManager{maxRenders: DefaultMaxRenders}
	for _, opt := range opts {
		opt(bm)
	}
	return bm
}

// Browser returns the running browser, launching Chrome if none is running
// and replacing it once it has served maxRenders renders. If the replacement
// fails to start, the old browser stays in service.
// Returns ESANDBOX after Close.
func (bm *BrowserManager) Browser() (*rod.Browser, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, cardsnap.Errorf(cardsnap.ESANDBOX, "browser closed")
	}

	if bm.browser == nil {
		browser, l, err := bm.launch()
		if err != nil {
			return nil, err
		}
		bm.browser, bm.launcher, bm.renders = browser, l, 0
		return bm.browser, nil
	}

	if bm.maxRenders > 0 && bm.renders >= bm.maxRenders {
		if browser, l, err := bm.launch(); err == nil {
			bm.shutdown()
			bm.browser, bm.launcher, bm.renders = browser, l, 0
		}
	}
	return bm.browser, nil
}

// IncrementRenderCount records one render against the current browser.
func (bm *BrowserManager) IncrementRenderCount() {
	bm.mu.Lock()
	bm.renders++
	bm.mu.Unlock()
}

// Running reports whether a browser process is currently up.
func (bm *BrowserManager) Running() bool {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.browser != nil
}

// Close stops the browser if one was launched. Close is safe to call more
// than once.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	return bm.shutdown()
}

func (bm *BrowserManager) launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("hide-scrollbars").
		Set("font-render-hinting", "none").
		Leakless(true).
		Headless(true)
	if bm.bin != "" {
		l = l.Bin(bm.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}

// shutdown must be called with mu held.
func (bm *BrowserManager) shutdown() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}
