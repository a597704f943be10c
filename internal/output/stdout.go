package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/thoni-miguel/web-scraping-template/internal/config"
	"github.com/thoni-miguel/web-scraping-template/internal/types"
)

// StdoutWriter renders the records as a table on stdout, useful for a
// quick look at the data before picking a file format.
type StdoutWriter struct {
	out    io.Writer
	logger *slog.Logger
}

func NewStdoutWriter(wc *WriterConfig) *StdoutWriter {
	return &StdoutWriter{
		out:    os.Stdout,
		logger: slog.With(slog.String("writer", config.FormatStdout)),
	}
}

func (w *StdoutWriter) Write(result *types.Result) error {
	header, rows := headerAndRows(result)
	table := tablewriter.NewWriter(w.out)
	table.Header(header)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("error while appending table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("error while rendering table: %w", err)
	}
	fmt.Fprintf(w.out, "%d items\n", len(rows))
	return nil
}
