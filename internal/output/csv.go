package output

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thoni-miguel/web-scraping-template/internal/config"
	"github.com/thoni-miguel/web-scraping-template/internal/types"
)

// CSVWriter writes the records as csv, one row per record, with a header
// row derived from the record keys in configuration order.
type CSVWriter struct {
	*WriterConfig
	logger *slog.Logger
}

func NewCSVWriter(wc *WriterConfig) *CSVWriter {
	return &CSVWriter{
		WriterConfig: wc,
		logger:       slog.With(slog.String("writer", config.FormatCSV)),
	}
}

func (w *CSVWriter) Write(result *types.Result) error {
	filename := filepath.Join(w.Dir, w.Basename+".csv")
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error while trying to open file: %w", err)
	}
	defer f.Close()

	header, rows := headerAndRows(result)
	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("error while writing csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("error while writing csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("error while flushing csv: %w", err)
	}
	w.logger.Info(fmt.Sprintf("wrote %d items to file %s", len(rows), filename))
	return nil
}
