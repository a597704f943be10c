// Package scraper turns a scrape configuration into a sequence of browser
// actions and produces a set of extracted records.
package scraper

import (
	"context"
	"fmt"
	"sync"

	"github.com/thoni-miguel/web-scraping-template/internal/browse"
	"github.com/thoni-miguel/web-scraping-template/internal/config"
	"github.com/thoni-miguel/web-scraping-template/internal/types"
)

// An Extractor produces records from a page according to a configuration.
// Custom extractors can be registered under a name and referenced from the
// configuration's 'extractor' field, which keeps executable code out of
// config files.
type Extractor interface {
	Extract(ctx context.Context, page browse.Page, cfg *config.ScrapeConfig) (*types.Result, error)
}

var (
	extractorsMu sync.RWMutex
	extractors   = map[string]Extractor{}
)

// RegisterExtractor registers a custom extractor under the given name.
func RegisterExtractor(name string, e Extractor) error {
	if name == "" {
		return fmt.Errorf("extractor name must not be empty")
	}
	extractorsMu.Lock()
	defer extractorsMu.Unlock()
	if _, ok := extractors[name]; ok {
		return fmt.Errorf("extractor %q is already registered", name)
	}
	extractors[name] = e
	return nil
}

// NewExtractor selects the extractor for the given configuration: a named
// custom one if 'extractor' is set, otherwise the built-in DefaultExtractor
// which composes the login, infinite_scroll and multi_page options.
func NewExtractor(cfg *config.ScrapeConfig) (Extractor, error) {
	if cfg.Extractor != "" {
		extractorsMu.RLock()
		defer extractorsMu.RUnlock()
		e, ok := extractors[cfg.Extractor]
		if !ok {
			return nil, fmt.Errorf("no extractor registered under name %q", cfg.Extractor)
		}
		return e, nil
	}
	return &DefaultExtractor{}, nil
}
