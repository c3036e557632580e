package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
)

// CSVSheetName is the sheet name given to the single sheet of a CSV upload.
const CSVSheetName = "Sheet1"

// ReadCSV reads a CSV document as a one-sheet workbook.
func ReadCSV(r io.Reader, bookName string) (*models.WorkbookData, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var grid models.CellGrid
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		row := make(models.Row, len(record))
		for i, v := range record {
			row[i] = parseValue(v)
		}
		grid = append(grid, row)
	}

	return &models.WorkbookData{
		BookName: bookName,
		Sheets:   []models.SheetGrid{{Name: CSVSheetName, Rows: grid}},
	}, nil
}
