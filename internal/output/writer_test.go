package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/thoni-miguel/web-scraping-template/internal/config"
	"github.com/thoni-miguel/web-scraping-template/internal/types"
)

func testResult() *types.Result {
	return &types.Result{
		Fields: []string{"title", "tags", "price"},
		Items: []types.Record{
			{"title": "First & Second", "tags": []string{"a", "b"}, "price": "10"},
			{"title": "Third", "tags": []string{"c"}, "price": ""},
		},
		Stats: &types.ScrapeStats{NrItems: 2},
	}
}

func TestJSONWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(&WriterConfig{Format: config.FormatJSON, Dir: dir})
	if err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}
	result := testResult()
	if err := w.Write(result); err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "extracted_data.json"))
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	var readBack []map[string]any
	if err := json.Unmarshal(data, &readBack); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if len(readBack) != len(result.Items) {
		t.Fatalf("expected %d records but got %d", len(result.Items), len(readBack))
	}
	if readBack[0]["title"] != "First & Second" {
		t.Errorf("expected title 'First & Second' but got %v", readBack[0]["title"])
	}
	if readBack[1]["title"] != "Third" {
		t.Errorf("expected record order to be preserved but got %v", readBack[1]["title"])
	}
	tags, ok := readBack[0]["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "a" {
		t.Errorf("expected tags [a b] but got %v", readBack[0]["tags"])
	}
	// html characters must not be escaped
	if !strings.Contains(string(data), "First & Second") {
		t.Error("expected '&' to be written unescaped")
	}
}

func TestJSONWriterEmptyResult(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(&WriterConfig{Format: config.FormatJSON, Dir: dir})
	if err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}
	if err := w.Write(&types.Result{Fields: []string{"title"}}); err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "extracted_data.json"))
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("expected an empty json array but got %q", data)
	}
}

func TestCSVWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(&WriterConfig{Format: config.FormatCSV, Dir: dir})
	if err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}
	if err := w.Write(testResult()); err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "extracted_data.csv"))
	if err != nil {
		t.Fatalf("failed to open output file: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to read csv: %v", err)
	}
	expected := [][]string{
		{"title", "tags", "price"},
		{"First & Second", "a; b", "10"},
		{"Third", "c", ""},
	}
	if len(rows) != len(expected) {
		t.Fatalf("expected %d rows but got %d", len(expected), len(rows))
	}
	for i, row := range expected {
		for j, cell := range row {
			if rows[i][j] != cell {
				t.Errorf("expected %q at row %d col %d but got %q", cell, i, j, rows[i][j])
			}
		}
	}
}

func TestExcelWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(&WriterConfig{Format: config.FormatExcel, Dir: dir})
	if err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}
	if err := w.Write(testResult()); err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(filepath.Join(dir, "extracted_data.xlsx"))
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("failed to read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows but got %d", len(rows))
	}
	if rows[0][0] != "title" || rows[1][0] != "First & Second" || rows[2][1] != "c" {
		t.Errorf("unexpected sheet content: %v", rows)
	}
}

func TestStdoutWriter(t *testing.T) {
	w := NewStdoutWriter(&WriterConfig{Format: config.FormatStdout})
	var buf bytes.Buffer
	w.out = &buf
	if err := w.Write(testResult()); err != nil {
		t.Fatalf("got unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Third") {
		t.Errorf("expected the table to contain record values, got:\n%s", out)
	}
	if !strings.Contains(out, "2 items") {
		t.Errorf("expected an item count, got:\n%s", out)
	}
}

func TestNewWriterUnknownFormat(t *testing.T) {
	if _, err := NewWriter(&WriterConfig{Format: "parquet"}); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}
