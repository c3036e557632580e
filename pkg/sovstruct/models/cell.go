// Package models defines data structures for schedule-of-values processing.
package models

// Row is one worksheet row. Each cell holds nil (empty), string, int64,
// float64 or time.Time.
type Row []interface{}

// CellGrid is the ordered rows of a single sheet, as read from the workbook.
type CellGrid []Row

// Cell returns the value at col, or nil when the row is shorter.
func (r Row) Cell(col int) interface{} {
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}
