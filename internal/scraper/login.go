package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/thoni-miguel/web-scraping-template/internal/browse"
	"github.com/thoni-miguel/web-scraping-template/internal/config"
	"github.com/thoni-miguel/web-scraping-template/internal/log"
)

// login fills and submits the configured login form, then waits for the
// post-login page to settle.
func login(ctx context.Context, page browse.Page, lc *config.LoginConfig) error {
	logger := log.LoggerFromContext(ctx)
	logger.Debug("logging in")
	if err := page.Fill(ctx, lc.UsernameSelector, lc.Username); err != nil {
		return fmt.Errorf("failed to fill username field %q: %w", lc.UsernameSelector, err)
	}
	if err := page.Fill(ctx, lc.PasswordSelector, lc.Password); err != nil {
		return fmt.Errorf("failed to fill password field %q: %w", lc.PasswordSelector, err)
	}
	clicked, err := page.Click(ctx, lc.SubmitSelector)
	if err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}
	if !clicked {
		return fmt.Errorf("login submit control %q not found", lc.SubmitSelector)
	}
	return page.Sleep(ctx, time.Duration(lc.WaitMS)*time.Millisecond)
}
