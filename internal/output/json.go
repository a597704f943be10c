package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thoni-miguel/web-scraping-template/internal/config"
	"github.com/thoni-miguel/web-scraping-template/internal/types"
)

// JSONWriter writes the records as an indented json array.
type JSONWriter struct {
	*WriterConfig
	logger *slog.Logger
}

func NewJSONWriter(wc *WriterConfig) *JSONWriter {
	return &JSONWriter{
		WriterConfig: wc,
		logger:       slog.With(slog.String("writer", config.FormatJSON)),
	}
}

func (w *JSONWriter) Write(result *types.Result) error {
	filename := filepath.Join(w.Dir, w.Basename+".json")
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error while trying to open file: %w", err)
	}
	defer f.Close()

	items := result.Items
	if items == nil {
		items = []types.Record{}
	}

	// We cannot simply use json.MarshalIndent because it automatically
	// replaces certain html characters with the corresponding Unicode
	// replacement rune, which mangles scraped text and urls.
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(items); err != nil {
		return fmt.Errorf("error while encoding items: %w", err)
	}

	var indentBuffer bytes.Buffer
	if err := json.Indent(&indentBuffer, buffer.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("error while indenting json: %w", err)
	}
	if _, err := f.Write(indentBuffer.Bytes()); err != nil {
		return fmt.Errorf("error while writing json to file: %w", err)
	}
	w.logger.Info(fmt.Sprintf("wrote %d items to file %s", len(items), filename))
	return nil
}
