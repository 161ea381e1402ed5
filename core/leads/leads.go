package leads

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultColumn is the header most lead exports use for the company name.
const DefaultColumn = "companyName"

// FromText splits a pasted block into raw name lines. Blank-line filtering is
// left to normalization so counts stay consistent across sources.
func FromText(block string) []string {
	if block == "" {
		return nil
	}
	block = strings.ReplaceAll(block, "\r\n", "\n")
	return strings.Split(block, "\n")
}

// FromCSV extracts the values of the named column from a CSV export.
// Header matching trims surrounding whitespace; rows with an empty value in
// the target column are skipped.
func FromCSV(r io.Reader, column string) ([]string, error) {
	if column == "" {
		column = DefaultColumn
	}

	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	colIdx := -1
	for i, col := range records[0] {
		if strings.TrimSpace(col) == column {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return nil, fmt.Errorf("csv is missing required column %q", column)
	}

	var names []string
	for _, row := range records[1:] {
		if colIdx >= len(row) {
			continue
		}
		if name := row[colIdx]; name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// FromXLSX extracts the values of the named column from the first sheet of an
// XLSX workbook. The first row is treated as the header.
func FromXLSX(path, column string) ([]string, error) {
	if column == "" {
		column = DefaultColumn
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx sheet %q is empty", sheets[0])
	}

	colIdx := -1
	for i, col := range rows[0] {
		if strings.TrimSpace(col) == column {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return nil, fmt.Errorf("xlsx is missing required column %q", column)
	}

	var names []string
	for _, row := range rows[1:] {
		if colIdx >= len(row) {
			continue
		}
		if name := row[colIdx]; name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
