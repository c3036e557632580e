package parser

import (
	"regexp"
	"unicode/utf8"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
)

// HeaderScanRows is how many leading rows are searched for a header row.
const HeaderScanRows = 10

var numericText = regexp.MustCompile(`^\d+\.?\d*$`)

// DetectedTable is a sheet split into its header row and data rows.
type DetectedTable struct {
	// HeaderIndex is the 0-based index of the header row.
	HeaderIndex int
	// Headers is the header row rendered as text (empty if none was found).
	Headers []string
	// DataRows holds every later row that has at least one non-blank cell.
	DataRows []models.Row
}

// DetectTable finds the header row among the first HeaderScanRows rows: the
// first row containing a text cell longer than two characters that is not
// purely numeric. When none qualifies, row 0 is assumed and Headers is empty.
func DetectTable(grid models.CellGrid) DetectedTable {
	table := DetectedTable{}
	for i := 0; i < len(grid) && i < HeaderScanRows; i++ {
		if isHeaderRow(grid[i]) {
			table.HeaderIndex = i
			table.Headers = RowText(grid[i])
			break
		}
	}

	start := table.HeaderIndex + 1
	for i := start; i < len(grid); i++ {
		if !IsBlankRow(grid[i]) {
			table.DataRows = append(table.DataRows, grid[i])
		}
	}
	return table
}

func isHeaderRow(row models.Row) bool {
	for _, cell := range row {
		s, ok := cell.(string)
		if ok && utf8.RuneCountInString(s) > 2 && !numericText.MatchString(s) {
			return true
		}
	}
	return false
}

// RowText renders every cell of row as text.
func RowText(row models.Row) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = CellText(cell)
	}
	return out
}
