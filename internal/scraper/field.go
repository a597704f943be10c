package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/thoni-miguel/web-scraping-template/internal/browse"
	"github.com/thoni-miguel/web-scraping-template/internal/config"
	"github.com/thoni-miguel/web-scraping-template/internal/types"
)

// parsePage reads the page's current HTML and parses it into a document.
func parsePage(ctx context.Context, page browse.Page) (*goquery.Document, error) {
	body, err := page.HTML(ctx)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

// nodeText returns the trimmed text content of the first node in the
// selection. Whitespace between text nodes is collapsed to single spaces.
func nodeText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(sel.Nodes[0])
	return strings.Join(parts, " ")
}

// selectRecord applies the selector mapping against the document root.
// A selector matching exactly one element yields a string, more than one
// a list of strings, none an empty string.
func selectRecord(root *goquery.Selection, selectors *config.SelectorMap) types.Record {
	record := types.Record{}
	for _, name := range selectors.Names() {
		sel := root.Find(selectors.Get(name))
		switch sel.Length() {
		case 0:
			record[name] = ""
		case 1:
			record[name] = nodeText(sel)
		default:
			values := make([]string, 0, sel.Length())
			sel.Each(func(_ int, s *goquery.Selection) {
				if v := nodeText(s); v != "" {
					values = append(values, v)
				}
			})
			record[name] = values
		}
	}
	return record
}

// itemRecords produces one record per element matching the item selector,
// resolving the item selector mapping relative to each item.
func itemRecords(root *goquery.Selection, itemSelector string, fields *config.SelectorMap) []types.Record {
	var records []types.Record
	root.Find(itemSelector).Each(func(_ int, item *goquery.Selection) {
		record := types.Record{}
		for _, name := range fields.Names() {
			record[name] = nodeText(item.Find(fields.Get(name)).First())
		}
		records = append(records, record)
	})
	return records
}

// extractCurrent extracts all records visible on the current page state.
func extractCurrent(doc *goquery.Document, cfg *config.ScrapeConfig) []types.Record {
	if cfg.ItemSelector != "" {
		return itemRecords(doc.Selection, cfg.ItemSelector, &cfg.ItemSelectors)
	}
	return []types.Record{selectRecord(doc.Selection, &cfg.Selectors)}
}

// newResult creates an empty result with the field order taken from the
// configured selector mapping.
func newResult(cfg *config.ScrapeConfig) *types.Result {
	fields := cfg.Selectors.Names()
	if cfg.ItemSelector != "" {
		fields = cfg.ItemSelectors.Names()
	}
	return &types.Result{
		Fields: fields,
		Stats:  &types.ScrapeStats{},
	}
}
