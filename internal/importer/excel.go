// Package importer supports bulk region/city creation from an uploaded
// Excel workbook. Rows are `region | city`; a row with an empty city
// creates the region alone.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column indices for the workbook (0-based).
const (
	colRegion = 0 // Column A
	colCity   = 1 // Column B

	headerRowIndex = 1 // Excel rows are 1-based, header is row 1
)

// GeoRow is a parsed workbook row.
type GeoRow struct {
	Row    int // Excel row number, for error reporting
	Region string
	City   string
}

// ImportError is a validation or creation failure for one row.
type ImportError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ParseWorkbook reads the first sheet and returns the data rows plus
// per-row validation errors. Rows that fail validation are excluded
// from the returned data.
func ParseWorkbook(r io.Reader) ([]GeoRow, []ImportError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	var parsed []GeoRow
	var importErrors []ImportError

	for i, cells := range rows {
		rowNum := i + 1
		if rowNum == headerRowIndex {
			continue
		}

		row := GeoRow{Row: rowNum}
		if len(cells) > colRegion {
			row.Region = strings.TrimSpace(cells[colRegion])
		}
		if len(cells) > colCity {
			row.City = strings.TrimSpace(cells[colCity])
		}

		// Fully empty rows are common at the tail of a sheet.
		if row.Region == "" && row.City == "" {
			continue
		}

		if msg := ValidateRow(row); msg != "" {
			importErrors = append(importErrors, ImportError{Row: rowNum, Error: msg})
			continue
		}
		parsed = append(parsed, row)
	}

	return parsed, importErrors, nil
}

// ValidateRow returns an error message for an invalid row, or "".
func ValidateRow(row GeoRow) string {
	if row.Region == "" {
		return "region is required"
	}
	return ""
}
