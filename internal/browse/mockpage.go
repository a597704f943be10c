package browse

import (
	"context"
	"errors"
	"time"
)

// MockPage is a scripted Page implementation for tests. It serves static
// content and can simulate infinite scroll (ScrollStates) and click-based
// pagination (ClickStates).
type MockPage struct {
	// Content is the HTML shown right after navigation.
	Content string
	// ScrollStates holds the HTML shown after each scroll, entry i being
	// the state after i+1 scrolls. Scrolling past the last entry keeps
	// the page at the last state.
	ScrollStates []string
	// ClickStates maps a selector to the successive HTML states reached
	// by clicking it. Once the states are exhausted the control is gone
	// and Click returns false.
	ClickStates map[string][]string
	// FailNavigations makes the first n Navigate calls fail.
	FailNavigations int
	// HTMLErr forces HTML to fail.
	HTMLErr error
	// ScreenshotData is returned by Screenshot.
	ScreenshotData []byte
	// ScreenshotErr forces Screenshot to fail.
	ScreenshotErr error

	// Recorded interactions, for assertions.
	Navigations []string
	Fills       map[string]string
	Clicks      []string
	Scrolls     int
	Slept       time.Duration
	Closed      bool

	current string
	clicked map[string]int
}

var _ Page = (*MockPage)(nil)

func (p *MockPage) Navigate(ctx context.Context, url string) error {
	p.Navigations = append(p.Navigations, url)
	if p.FailNavigations > 0 {
		p.FailNavigations--
		return errors.New("navigation failed")
	}
	p.current = p.Content
	return nil
}

func (p *MockPage) Sleep(ctx context.Context, d time.Duration) error {
	// recorded only, tests should not actually wait
	p.Slept += d
	return ctx.Err()
}

func (p *MockPage) Fill(ctx context.Context, selector, value string) error {
	if p.Fills == nil {
		p.Fills = map[string]string{}
	}
	p.Fills[selector] = value
	return nil
}

func (p *MockPage) Click(ctx context.Context, selector string) (bool, error) {
	p.Clicks = append(p.Clicks, selector)
	states, ok := p.ClickStates[selector]
	if !ok {
		return false, nil
	}
	if p.clicked == nil {
		p.clicked = map[string]int{}
	}
	n := p.clicked[selector]
	if n >= len(states) {
		return false, nil
	}
	p.current = states[n]
	p.clicked[selector] = n + 1
	return true, nil
}

func (p *MockPage) ScrollToBottom(ctx context.Context) error {
	p.Scrolls++
	if len(p.ScrollStates) > 0 {
		i := p.Scrolls - 1
		if i >= len(p.ScrollStates) {
			i = len(p.ScrollStates) - 1
		}
		p.current = p.ScrollStates[i]
	}
	return nil
}

func (p *MockPage) HTML(ctx context.Context) (string, error) {
	if p.HTMLErr != nil {
		return "", p.HTMLErr
	}
	return p.current, nil
}

func (p *MockPage) Screenshot(ctx context.Context) ([]byte, error) {
	if p.ScreenshotErr != nil {
		return nil, p.ScreenshotErr
	}
	return p.ScreenshotData, nil
}

func (p *MockPage) Close() error {
	p.Closed = true
	return nil
}
