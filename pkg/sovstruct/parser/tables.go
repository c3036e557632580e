package parser

import (
	"fmt"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
	"github.com/xuri/excelize/v2"
)

// UsedRange returns the bounding range of non-blank cells (e.g. "A1:D10"),
// or "" when the grid holds no data.
func UsedRange(grid models.CellGrid) string {
	minRow, maxRow, minCol, maxCol := findDataBounds(grid)
	if minRow < 0 {
		return ""
	}

	// Convert to Excel range notation
	startCell, err := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	if err != nil {
		return ""
	}
	endCell, err := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// Density returns the share of non-blank cells within the used range.
func Density(grid models.CellGrid) float64 {
	minRow, maxRow, minCol, maxCol := findDataBounds(grid)
	if minRow < 0 {
		return 0
	}
	totalCells := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	return float64(countNonEmptyCells(grid, minRow, maxRow, minCol, maxCol)) / float64(totalCells)
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(grid models.CellGrid) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range grid {
		for colIdx, cell := range row {
			if IsBlank(cell) {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(grid models.CellGrid, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(grid); rowIdx++ {
		row := grid[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if !IsBlank(row[colIdx]) {
				count++
			}
		}
	}
	return count
}
