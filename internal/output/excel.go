package output

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/thoni-miguel/web-scraping-template/internal/config"
	"github.com/thoni-miguel/web-scraping-template/internal/types"
)

const sheetName = "Sheet1"

// ExcelWriter writes the records into a single-sheet xlsx workbook.
type ExcelWriter struct {
	*WriterConfig
	logger *slog.Logger
}

func NewExcelWriter(wc *WriterConfig) *ExcelWriter {
	return &ExcelWriter{
		WriterConfig: wc,
		logger:       slog.With(slog.String("writer", config.FormatExcel)),
	}
}

func (w *ExcelWriter) Write(result *types.Result) error {
	filename := filepath.Join(w.Dir, w.Basename+".xlsx")
	f := excelize.NewFile()
	defer f.Close()

	header, rows := headerAndRows(result)
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("error while writing sheet header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("error while computing cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("error while writing sheet row: %w", err)
		}
	}
	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("error while saving workbook: %w", err)
	}
	w.logger.Info(fmt.Sprintf("wrote %d items to file %s", len(rows), filename))
	return nil
}
