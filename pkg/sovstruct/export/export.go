// Package export writes projected records in the standardized SOV layout.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/parser"
)

// SheetName is the worksheet that holds the standardized table.
const SheetName = "Standardized_SOV"

// FileName returns the default export name for a run finished at t.
func FileName(t time.Time, ext string) string {
	return fmt.Sprintf("SOV_Processed_%d.%s", t.UnixMilli(), ext)
}

// Headers returns the display labels in schema order.
func Headers() []string {
	out := make([]string, len(models.SchemaFields))
	for i, f := range models.SchemaFields {
		out[i] = f.Label
	}
	return out
}

// rowValues lays out a record in schema order; absent fields are "".
func rowValues(r models.MappedRecord) []interface{} {
	out := make([]interface{}, len(models.SchemaFields))
	for i, f := range models.SchemaFields {
		if v, ok := r[f.Key]; ok && v != nil {
			out[i] = v
		} else {
			out[i] = ""
		}
	}
	return out
}

// NewWorkbook builds a workbook with a single SheetName sheet: a bold label
// row followed by one row per record. The caller closes the file.
func NewWorkbook(records []models.MappedRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := writeRows(f, records); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func writeRows(f *excelize.File, records []models.MappedRecord) error {
	headers := Headers()
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol, bold); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := rowValues(r)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return nil
}

// WriteXLSX streams the standardized workbook to w.
func WriteXLSX(w io.Writer, records []models.MappedRecord) error {
	f, err := NewWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the standardized workbook to path.
func SaveXLSX(path string, records []models.MappedRecord) error {
	f, err := NewWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteCSV writes the label row and one line per record. Fields are quoted
// only when they contain a separator, quote or newline.
func WriteCSV(w io.Writer, records []models.MappedRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers()); err != nil {
		return err
	}

	line := make([]string, len(models.SchemaFields))
	for _, r := range records {
		for i, v := range rowValues(r) {
			line[i] = parser.CellText(v)
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
