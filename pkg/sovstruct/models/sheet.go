package models

// SheetType is the rule-based role guessed for a sheet.
type SheetType string

const (
	SheetTypeSummary  SheetType = "summary"
	SheetTypeData     SheetType = "data"
	SheetTypeTemplate SheetType = "template"
	SheetTypeEmpty    SheetType = "empty"
	SheetTypeUnknown  SheetType = "unknown"
)

// SheetProfile is the structural profile of one sheet.
type SheetProfile struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// RowCount is the number of rows in the grid, blank rows included.
	RowCount int `json:"row_count"`
	// HeaderRow is row 0 rendered as text.
	HeaderRow []string `json:"header_row"`
	// SampleRows holds up to five non-blank rows following the header.
	SampleRows []Row `json:"sample_rows,omitempty"`
	// IsEmpty is set when the sheet has at most one row.
	IsEmpty bool `json:"is_empty"`
	// RuleBasedType is the role guessed from structure alone.
	RuleBasedType SheetType `json:"rule_based_type"`
	// RuleBasedConfidence is a relative strength signal. It may exceed 1.
	RuleBasedConfidence float64 `json:"rule_based_confidence"`
	// Reasons explains the rule-based decision.
	Reasons []string `json:"reasons,omitempty"`
	// UsedRange is the bounding range of non-empty cells (e.g. "A1:F30").
	UsedRange string `json:"used_range,omitempty"`
	// Density is the share of non-empty cells within UsedRange.
	Density float64 `json:"density"`
}

// LikelyData reports whether the structural rules consider the sheet data.
func (p SheetProfile) LikelyData() bool {
	return p.RuleBasedType == SheetTypeData && p.RuleBasedConfidence > 0
}

// SheetClassification is the final verdict for one sheet.
type SheetClassification struct {
	SheetName     string  `json:"sheetName"`
	ShouldProcess bool    `json:"shouldProcess"`
	Type          string  `json:"type"`
	Confidence    float64 `json:"confidence"`
	Reason        string  `json:"reason"`
}

// ProcessedSheet describes a sheet whose rows were projected.
type ProcessedSheet struct {
	Name       string   `json:"name"`
	Headers    []string `json:"headers"`
	RowCount   int      `json:"row_count"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason"`
}
