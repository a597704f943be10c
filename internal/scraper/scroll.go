package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thoni-miguel/web-scraping-template/internal/browse"
	"github.com/thoni-miguel/web-scraping-template/internal/config"
	"github.com/thoni-miguel/web-scraping-template/internal/log"
	"github.com/thoni-miguel/web-scraping-template/internal/types"
)

// scrollToEnd scrolls to the bottom of the page max_scrolls times,
// pausing scroll_delay_ms after each scroll so lazily loaded content can
// render before extraction starts.
func scrollToEnd(ctx context.Context, page browse.Page, cfg *config.ScrapeConfig, stats *types.ScrapeStats) error {
	logger := log.LoggerFromContext(ctx)
	delay := time.Duration(cfg.ScrollDelayMS) * time.Millisecond

	for i := range cfg.MaxScrolls {
		if err := page.ScrollToBottom(ctx); err != nil {
			return fmt.Errorf("scroll %d failed: %w", i+1, err)
		}
		stats.NrScrolls++
		if err := page.Sleep(ctx, delay); err != nil {
			return err
		}
		logger.Debug("scroll completed", slog.Int("scroll", i+1), slog.Int("maxScrolls", cfg.MaxScrolls))
	}
	return nil
}
