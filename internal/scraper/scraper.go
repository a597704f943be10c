package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/thoni-miguel/web-scraping-template/internal/browse"
	"github.com/thoni-miguel/web-scraping-template/internal/config"
	"github.com/thoni-miguel/web-scraping-template/internal/log"
	"github.com/thoni-miguel/web-scraping-template/internal/types"
)

// Scraper runs a single scrape as described by its configuration:
// navigate (with bounded retries), wait, extract, screenshot.
type Scraper struct {
	Config *config.ScrapeConfig

	// newPage overrides how pages are opened, used by tests to avoid
	// launching a browser.
	newPage func() (browse.Page, error)
	browser *browse.Browser
}

// New returns a Scraper for the given configuration.
func New(cfg *config.ScrapeConfig) *Scraper {
	return &Scraper{Config: cfg}
}

func (s *Scraper) openPage() (browse.Page, error) {
	if s.newPage != nil {
		return s.newPage()
	}
	s.browser = browse.NewBrowser(browse.BrowserConfig{
		Headless:  s.Config.IsHeadless(),
		UserAgent: s.Config.UserAgent,
		SlowMoMS:  s.Config.SlowMoMS,
	})
	return s.browser.NewPage(), nil
}

// Run validates the configuration, drives the browser and returns the
// extracted records. No browser is launched for an invalid configuration.
// When a screenshot is configured it is taken whether or not extraction
// succeeded, so failed runs can be diagnosed.
func (s *Scraper) Run(ctx context.Context) (*types.Result, error) {
	cfg := s.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	extractor, err := NewExtractor(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	// one rate limit budget per run, covering the initial navigation and
	// every pagination click
	pace := newPacer(cfg.RateLimit)
	if de, ok := extractor.(*DefaultExtractor); ok {
		de.pace = pace
	}

	logger := log.LoggerFromContext(ctx).With(slog.String("url", cfg.URL))
	ctx = log.ContextWithLogger(ctx, logger)

	page, err := s.openPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			logger.Warn("failed to close page", slog.String("err", err.Error()))
		}
		if s.browser != nil {
			s.browser.Close()
		}
	}()
	if cfg.TakeScreenshot {
		defer s.captureScreenshot(ctx, page)
	}

	start := time.Now()
	if err := s.navigate(ctx, page, pace); err != nil {
		return nil, err
	}

	result, err := extractor.Extract(ctx, page, cfg)
	if result == nil {
		result = newResult(cfg)
	}
	if result.Stats != nil {
		result.Stats.NrItems = len(result.Items)
		result.Stats.Start = start
		result.Stats.End = time.Now()
	}
	if err != nil {
		return result, fmt.Errorf("extraction failed: %w", err)
	}
	logger.Info("scrape finished", slog.Int("items", len(result.Items)))
	return result, nil
}

// navigate loads the configured URL, retrying a bounded number of times,
// and waits for the configured settle time.
func (s *Scraper) navigate(ctx context.Context, page browse.Page, pace *pacer) error {
	cfg := s.Config
	logger := log.LoggerFromContext(ctx)
	retryDelay := time.Duration(cfg.RetryDelayMS) * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			logger.Warn("retrying navigation",
				slog.Int("attempt", attempt+1), slog.String("err", lastErr.Error()))
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := pace.wait(ctx); err != nil {
			return err
		}
		if err := page.Navigate(ctx, cfg.URL); err != nil {
			lastErr = err
			continue
		}
		return page.Sleep(ctx, time.Duration(cfg.WaitMS)*time.Millisecond)
	}
	return fmt.Errorf("navigation to %s failed after %d attempts: %w", cfg.URL, cfg.MaxRetries+1, lastErr)
}

// captureScreenshot writes the current page to the configured screenshot
// file. Failures are logged, they never fail the run.
func (s *Scraper) captureScreenshot(ctx context.Context, page browse.Page) {
	cfg := s.Config
	logger := log.LoggerFromContext(ctx)
	buf, err := page.Screenshot(ctx)
	if err != nil {
		logger.Warn("failed to capture screenshot", slog.String("err", err.Error()))
		return
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		logger.Warn("failed to create output directory", slog.String("err", err.Error()))
		return
	}
	filename := filepath.Join(cfg.OutputDir, cfg.ScreenshotFile)
	if err := os.WriteFile(filename, buf, 0644); err != nil {
		logger.Warn("failed to write screenshot", slog.String("err", err.Error()))
		return
	}
	logger.Info("screenshot saved", slog.String("file", filename))
}
