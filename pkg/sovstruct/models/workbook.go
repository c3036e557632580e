package models

// SheetGrid is a named sheet and its cell grid.
type SheetGrid struct {
	// Name is the sheet name as it appears in the workbook.
	Name string `json:"name"`
	// Rows is the sheet content, including interior blank rows.
	Rows CellGrid `json:"rows"`
}

// WorkbookData represents workbook-level container with per-sheet grids.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets holds the sheets in workbook order.
	Sheets []SheetGrid `json:"sheets"`
}

// Sheet returns the grid for name and whether it exists.
func (w *WorkbookData) Sheet(name string) (SheetGrid, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return SheetGrid{}, false
}

// SheetNames returns sheet names in workbook order.
func (w *WorkbookData) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}
