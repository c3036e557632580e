package models

// WorkbookAnalysis describes how the sheets of a workbook were judged.
type WorkbookAnalysis struct {
	TotalSheets          int                   `json:"total_sheets"`
	Profiles             []SheetProfile        `json:"profiles"`
	Classifications      []SheetClassification `json:"classifications"`
	ClassificationSource DecisionSource        `json:"classification_source"`
	// ProcessedSheets lists the retained sheets in selection order.
	ProcessedSheets []ProcessedSheet `json:"processed_sheets"`
	// MultiSheet is set when rows from more than one sheet were merged.
	MultiSheet bool `json:"multi_sheet"`
}

// Result is the outcome of one processing run.
type Result struct {
	RunID    string           `json:"run_id"`
	BookName string           `json:"book_name"`
	Analysis WorkbookAnalysis `json:"analysis"`
	// Headers is the representative header set the mapping was built from.
	Headers       []string          `json:"headers"`
	Mapping       ColumnMapping     `json:"mapping"`
	MappingSource DecisionSource    `json:"mapping_source"`
	Records       []MappedRecord    `json:"records"`
	Confidence    float64           `json:"confidence"`
	Validation    ValidationSummary `json:"validation"`
}
