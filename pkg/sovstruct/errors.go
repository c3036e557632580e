package sovstruct

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates the input is neither a workbook nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrEmptyWorkbook indicates the workbook has no sheets.
var ErrEmptyWorkbook = errors.New("workbook contains no sheets")

// ErrNoDataRows indicates none of the retained sheets holds a data row.
var ErrNoDataRows = errors.New("no data rows found in any sheet")

// ProcessingError represents a failure while reading part of a workbook.
type ProcessingError struct {
	SheetName string
	Stage     string // "open", "cells", "csv"
	Err       error
}

func (e *ProcessingError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("processing error (%s): %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("processing error in sheet %q (%s): %v", e.SheetName, e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewProcessingError creates a new ProcessingError.
func NewProcessingError(sheetName, stage string, err error) *ProcessingError {
	return &ProcessingError{
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}
