// Package browse wraps the browser automation engine behind a small Page
// interface so that extraction logic can be tested without a browser.
package browse

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserConfig holds the options needed to launch a browser.
type BrowserConfig struct {
	Headless  bool
	UserAgent string
	// SlowMoMS is an extra pause after every page interaction, mainly
	// useful when watching a visible browser do its thing.
	SlowMoMS int
}

// Browser wraps a chromedp exec allocator. All pages created from the
// same Browser share one chrome process.
type Browser struct {
	allocContext context.Context
	cancelAlloc  context.CancelFunc
	slowMo       time.Duration
}

// NewBrowser creates a new exec allocator. The chrome process itself is
// only started once the first page runs an action.
func NewBrowser(bc BrowserConfig) *Browser {
	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(1920, 1080), // init with a desktop view (sometimes pages look different on mobile, eg buttons are missing)
		chromedp.Flag("headless", bc.Headless),
	)
	if bc.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(bc.UserAgent))
	}
	allocContext, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Browser{
		allocContext: allocContext,
		cancelAlloc:  cancelAlloc,
		slowMo:       time.Duration(bc.SlowMoMS) * time.Millisecond,
	}
}

// NewPage opens a new browser tab.
func (b *Browser) NewPage() *ChromePage {
	tabCtx, cancelTab := chromedp.NewContext(b.allocContext)
	return &ChromePage{
		tabCtx:    tabCtx,
		cancelTab: cancelTab,
		slowMo:    b.slowMo,
	}
}

// Close shuts down the browser process and all its tabs.
func (b *Browser) Close() {
	b.cancelAlloc()
}
