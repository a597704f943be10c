// Package output provides the interface, configuration and implementations
// for writers that persist scraped records.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/thoni-miguel/web-scraping-template/internal/config"
	"github.com/thoni-miguel/web-scraping-template/internal/types"
)

// Writer persists a scrape result to a specific output, eg. a json file.
type Writer interface {
	Write(result *types.Result) error
}

// WriterConfig defines the necessary parameters to make a new writer.
type WriterConfig struct {
	Format   string
	Dir      string
	Basename string
}

// NewWriter returns a new writer depending on the configured format.
// File-based writers get their target directory created here, so I/O
// problems surface before any scraping starts.
func NewWriter(wc *WriterConfig) (Writer, error) {
	if wc.Basename == "" {
		wc.Basename = config.DefaultOutputBasename
	}
	switch wc.Format {
	case config.FormatStdout:
		return NewStdoutWriter(wc), nil
	case config.FormatJSON, config.FormatCSV, config.FormatExcel:
		if wc.Dir != "" {
			if err := os.MkdirAll(wc.Dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create directory %s: %w", wc.Dir, err)
			}
		}
		switch wc.Format {
		case config.FormatJSON:
			return NewJSONWriter(wc), nil
		case config.FormatCSV:
			return NewCSVWriter(wc), nil
		default:
			return NewExcelWriter(wc), nil
		}
	default:
		return nil, fmt.Errorf("writer of type '%s' not implemented", wc.Format)
	}
}

// cellString renders a record value as a single cell. Lists are joined
// with "; ".
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, "; ")
	default:
		return fmt.Sprint(t)
	}
}

// headerAndRows flattens a result into a header line and one string row
// per record, using the result's field order.
func headerAndRows(result *types.Result) ([]string, [][]string) {
	rows := make([][]string, 0, len(result.Items))
	for _, item := range result.Items {
		row := make([]string, 0, len(result.Fields))
		for _, field := range result.Fields {
			row = append(row, cellString(item[field]))
		}
		rows = append(rows, row)
	}
	return result.Fields, rows
}
