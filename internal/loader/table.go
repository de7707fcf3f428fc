package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a sheet read as strings: one header row and its data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadFile returns the raw bytes of a data source. The bytes double as the
// cache identity of the source.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[Loader] failed to read %s: %w", path, err)
	}
	return data, nil
}

// ParseTable decodes data by the extension of name: .csv, or .xlsx using the
// first sheet.
func ParseTable(name string, data []byte) (Table, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		return parseCSV(data)
	case ".xlsx", ".xlsm":
		return parseXLSX(data)
	default:
		return Table{}, fmt.Errorf("[Loader] unsupported file type %q", ext)
	}
}

func parseCSV(data []byte) (Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("[Loader] failed to parse CSV: %w", err)
	}
	return toTable(records)
}

func parseXLSX(data []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, fmt.Errorf("[Loader] failed to open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("[Loader] failed to close workbook", slog.String("error", err.Error()))
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("[Loader] workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("[Loader] failed to read sheet %q: %w", sheets[0], err)
	}
	return toTable(rows)
}

func toTable(records [][]string) (Table, error) {
	if len(records) == 0 {
		return Table{}, fmt.Errorf("[Loader] missing header row")
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	rows := make([][]string, 0, len(records)-1)
	for _, r := range records[1:] {
		if isBlank(r) {
			continue
		}
		rows = append(rows, r)
	}
	return Table{Header: header, Rows: rows}, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// columns returns the index of each wanted column, and the ones not found.
func (t Table) columns(wanted ...string) (map[string]int, []string) {
	index := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		index[h] = i
	}
	found := make(map[string]int, len(wanted))
	var missing []string
	for _, w := range wanted {
		i, ok := index[w]
		if !ok {
			missing = append(missing, w)
			continue
		}
		found[w] = i
	}
	return found, missing
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
