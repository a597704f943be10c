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

// DefaultExtractor is the built-in extractor. It runs the configured steps
// in order: log in when credentials are set, scroll to reveal lazily
// loaded content when infinite_scroll is set, then apply the selector
// mapping against the rendered page. With multi_page enabled it clicks
// the pagination control and repeats up to max_pages.
type DefaultExtractor struct {
	// pace is shared with the navigation step so all page requests of a
	// run draw from the same rate limit budget.
	pace *pacer
}

func (e *DefaultExtractor) Extract(ctx context.Context, page browse.Page, cfg *config.ScrapeConfig) (*types.Result, error) {
	result := newResult(cfg)
	if cfg.Login.HasCredentials() {
		if err := login(ctx, page, cfg.Login); err != nil {
			return result, err
		}
	}
	if cfg.InfiniteScroll {
		if err := scrollToEnd(ctx, page, cfg, result.Stats); err != nil {
			return result, err
		}
	}
	pace := e.pace
	if pace == nil {
		pace = newPacer(cfg.RateLimit)
	}
	return extractPages(ctx, page, cfg, result, pace)
}

func extractPages(ctx context.Context, page browse.Page, cfg *config.ScrapeConfig, result *types.Result, pace *pacer) (*types.Result, error) {
	logger := log.LoggerFromContext(ctx)

	for pageNr := 1; ; pageNr++ {
		doc, err := parsePage(ctx, page)
		if err != nil {
			if pageNr == 1 {
				return result, fmt.Errorf("failed to read page: %w", err)
			}
			// a later page failing loses that page, not the run
			logger.Warn("failed to read page, keeping records collected so far",
				slog.Int("page", pageNr), slog.String("err", err.Error()))
			result.Stats.NrErrors++
			return result, nil
		}
		records := extractCurrent(doc, cfg)
		result.Items = append(result.Items, records...)
		result.Stats.NrPages++
		logger.Debug("extracted page", slog.Int("page", pageNr), slog.Int("records", len(records)))

		if !cfg.MultiPage || pageNr >= cfg.MaxPages {
			return result, nil
		}
		if err := pace.wait(ctx); err != nil {
			return result, err
		}
		clicked, err := page.Click(ctx, cfg.PaginationSelector)
		if err != nil {
			logger.Warn("failed to navigate to next page, keeping records collected so far",
				slog.Int("page", pageNr+1), slog.String("err", err.Error()))
			result.Stats.NrErrors++
			return result, nil
		}
		if !clicked {
			logger.Debug("pagination control not found, stopping", slog.Int("page", pageNr))
			return result, nil
		}
		if err := page.Sleep(ctx, time.Duration(cfg.WaitMS)*time.Millisecond); err != nil {
			return result, err
		}
	}
}
