package browse

import (
	"context"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"github.com/thoni-miguel/web-scraping-template/internal/log"
)

// Page is the set of browser operations the extractors rely on. The
// ChromePage implementation drives a real chrome tab, the MockPage
// implementation serves scripted content for tests.
type Page interface {
	Navigate(ctx context.Context, url string) error
	Sleep(ctx context.Context, d time.Duration) error
	Fill(ctx context.Context, selector, value string) error
	// Click clicks the first element matching the selector. A selector
	// that matches nothing is not an error, Click returns false instead.
	Click(ctx context.Context, selector string) (bool, error)
	ScrollToBottom(ctx context.Context) error
	HTML(ctx context.Context) (string, error)
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

// ChromePage drives a single chrome tab via chromedp.
type ChromePage struct {
	tabCtx    context.Context
	cancelTab context.CancelFunc
	slowMo    time.Duration
}

var _ Page = (*ChromePage)(nil)

// run executes the actions on the tab, honoring a cancelled caller context.
func (p *ChromePage) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.slowMo > 0 {
		actions = append(actions, chromedp.Sleep(p.slowMo))
	}
	return chromedp.Run(p.tabCtx, actions...)
}

func (p *ChromePage) Navigate(ctx context.Context, url string) error {
	log.LoggerFromContext(ctx).Debug("navigating", slog.String("url", url))
	return p.run(ctx, chromedp.Navigate(url))
}

func (p *ChromePage) Sleep(ctx context.Context, d time.Duration) error {
	return p.run(ctx, chromedp.Sleep(d))
}

func (p *ChromePage) Fill(ctx context.Context, selector, value string) error {
	return p.run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
}

func (p *ChromePage) Click(ctx context.Context, selector string) (bool, error) {
	logger := log.LoggerFromContext(ctx)
	clicked := false
	err := p.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var nodes []*cdp.Node
		if err := chromedp.Nodes(selector, &nodes, chromedp.AtLeast(0)).Do(ctx); err != nil {
			return err
		}
		if len(nodes) == 0 {
			return nil // nothing to do
		}
		logger.Debug("clicking on node", slog.String("selector", selector))
		clicked = true
		return chromedp.MouseClickNode(nodes[0]).Do(ctx)
	}))
	return clicked, err
}

func (p *ChromePage) ScrollToBottom(ctx context.Context) error {
	log.LoggerFromContext(ctx).Debug("scrolling down the page")
	return p.run(ctx, chromedp.KeyEvent(kb.End))
}

func (p *ChromePage) HTML(ctx context.Context) (string, error) {
	var body string
	err := p.run(ctx, chromedp.OuterHTML("html", &body, chromedp.ByQuery))
	return body, err
}

func (p *ChromePage) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	err := p.run(ctx, chromedp.CaptureScreenshot(&buf))
	return buf, err
}

func (p *ChromePage) Close() error {
	p.cancelTab()
	return nil
}
