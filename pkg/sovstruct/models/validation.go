package models

// Severity grades a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationIssue is a single data-quality finding.
type ValidationIssue struct {
	// Row is the 1-based sheet row number, header offset included.
	Row      int      `json:"row"`
	Field    string   `json:"field"`
	Issue    string   `json:"issue"`
	Severity Severity `json:"severity"`
}

// ValidationSummary aggregates issues over all projected rows. The three row
// buckets are mutually exclusive and sum to TotalRows.
type ValidationSummary struct {
	TotalRows       int               `json:"total_rows"`
	SuccessfulRows  int               `json:"successful_rows"`
	WarningRows     int               `json:"warning_rows"`
	ErrorRows       int               `json:"error_rows"`
	CriticalMissing []string          `json:"critical_missing"`
	Issues          []ValidationIssue `json:"issues"`
	// TotalIssues counts every issue, including those past the report cap.
	TotalIssues int `json:"total_issues"`
}
