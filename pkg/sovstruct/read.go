package sovstruct

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/parser"
)

// Format is the container format of an input file.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// DetectFormat infers the input format from a file name.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// ReadFile loads a workbook or CSV file from disk.
func ReadFile(path string) (*models.WorkbookData, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	bookName := filepath.Base(path)
	if format == FormatCSV {
		fh, err := os.Open(path)
		if err != nil {
			return nil, openError(err)
		}
		defer fh.Close()
		return readCSV(fh, bookName)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, openError(err)
	}
	defer f.Close()

	return readWorkbook(f, bookName)
}

// ReadReader loads a workbook or CSV document from r. name selects the
// format and becomes the book name.
func ReadReader(r io.Reader, name string) (*models.WorkbookData, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	bookName := filepath.Base(name)
	if format == FormatCSV {
		return readCSV(r, bookName)
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewProcessingError("", "open", err)
	}
	defer f.Close()

	return readWorkbook(f, bookName)
}

func openError(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return NewProcessingError("", "open", errors.Join(ErrFileNotFound, err))
	}
	return NewProcessingError("", "open", err)
}

// readWorkbook extracts every sheet of f in workbook order.
func readWorkbook(f *excelize.File, bookName string) (*models.WorkbookData, error) {
	wb := &models.WorkbookData{BookName: bookName}
	for _, sheetName := range f.GetSheetList() {
		grid, err := parser.ExtractGrid(f, sheetName)
		if err != nil {
			return nil, NewProcessingError(sheetName, "cells", err)
		}
		wb.Sheets = append(wb.Sheets, models.SheetGrid{Name: sheetName, Rows: grid})
	}
	return wb, nil
}

func readCSV(r io.Reader, bookName string) (*models.WorkbookData, error) {
	wb, err := parser.ReadCSV(r, bookName)
	if err != nil {
		return nil, NewProcessingError(parser.CSVSheetName, "csv", err)
	}
	return wb, nil
}
