package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of rendered pages after which the browser
// is replaced.
const DefaultMaxPages = 75

// BrowserManager owns a headless Chrome process. Chrome memory grows with
// every page it renders, so after maxPages renders the process is retired
// and a fresh one is launched on the next request.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	bin      string
	maxPages int64

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    atomic.Int64
	closed   atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of renders before the browser is replaced.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithBin sets the Chrome binary. An empty path lets rod find or download
// a browser.
func WithBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// NewBrowserManager returns a manager with its first browser running.
// Close must be called when the manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}
	if _, err := bm.Browser(); err != nil {
		return nil, err
	}
	return bm, nil
}

// Browser returns the running browser, launching one if there is none or
// the current one has rendered maxPages pages.
func (bm *BrowserManager) Browser() (*rod.Browser, error) {
	if bm.closed.Load() {
		return nil, errClosed
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.browser != nil && bm.pages.Load() >= bm.maxPages {
		// Pages still open on the old browser fail and are retried by the
		// caller's fetch stack.
		_ = bm.shutdown()
	}
	if bm.browser == nil {
		if err := bm.launch(); err != nil {
			return nil, err
		}
		bm.pages.Store(0)
	}
	return bm.browser, nil
}

// PageDone records a finished render.
func (bm *BrowserManager) PageDone() {
	bm.pages.Add(1)
}

// LauncherPID returns the process ID of the browser launcher, or 0 when no
// browser is running.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// Close stops the browser. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.shutdown()
}

// launch must be called with mu held.
func (bm *BrowserManager) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	if bm.bin != "" {
		l = l.Bin(bm.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = l
	return nil
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
