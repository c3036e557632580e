// Package parser turns workbook content into cell grids and detects header rows.
package parser

import (
	"math"
	"strconv"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
	"github.com/xuri/excelize/v2"
)

// ExtractGrid extracts the cell grid of a sheet.
// Interior blank rows are kept so row counts match the sheet.
func ExtractGrid(f *excelize.File, sheetName string) (models.CellGrid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	grid := make(models.CellGrid, 0, len(rows))
	for _, row := range rows {
		cells := make(models.Row, len(row))
		for colIdx, cellValue := range row {
			cells[colIdx] = parseValue(cellValue)
		}
		grid = append(grid, cells)
	}

	return grid, nil
}

// parseValue attempts to parse a string value as a number.
// Returns nil for empty cells, int64 for integers, float64 for decimals,
// or the string unchanged. Text with a significant leading zero ("02134")
// and non-finite spellings ("NaN", "Inf") stay strings.
func parseValue(s string) interface{} {
	if s == "" {
		return nil
	}
	if hasLeadingZero(s) {
		return s
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	// Return as string
	return s
}

func hasLeadingZero(s string) bool {
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	return len(s) > 1 && s[0] == '0' && s[1] != '.'
}
