// Package validator checks projected records for data-quality issues.
package validator

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/parser"
)

const (
	// MaxReportedIssues caps the issue list in a summary. Row counts are
	// computed over every issue.
	MaxReportedIssues = 50

	// headerRowOffset turns a record index into a 1-based sheet row number.
	headerRowOffset = 2

	tivVarianceTolerance = 0.10
	minYearBuilt         = 1800
	futureYearAllowance  = 5
	maxStories           = 100
)

// Validator runs mapping-level and row-level checks.
type Validator struct {
	currentYear int
}

// New creates a Validator that judges construction years against
// currentYear.
func New(currentYear int) *Validator {
	return &Validator{currentYear: currentYear}
}

// CriticalMissing lists the critical fields no column maps to, in fixed
// order. It looks at the mapping only, never at row content.
func CriticalMissing(mapping models.ColumnMapping) []string {
	missing := []string{}
	for _, k := range models.CriticalFields {
		if !mapping.Covers(k) {
			missing = append(missing, string(k))
		}
	}
	return missing
}

// Validate checks every record and summarizes the outcome.
func (v *Validator) Validate(records []models.MappedRecord, mapping models.ColumnMapping) models.ValidationSummary {
	summary := models.ValidationSummary{
		TotalRows:       len(records),
		CriticalMissing: CriticalMissing(mapping),
		Issues:          []models.ValidationIssue{},
	}

	for i, record := range records {
		issues := v.checkRecord(i+headerRowOffset, record)
		summary.TotalIssues += len(issues)

		switch worstSeverity(issues) {
		case models.SeverityError:
			summary.ErrorRows++
		case models.SeverityWarning:
			summary.WarningRows++
		default:
			summary.SuccessfulRows++
		}

		for _, issue := range issues {
			if len(summary.Issues) == MaxReportedIssues {
				break
			}
			summary.Issues = append(summary.Issues, issue)
		}
	}

	return summary
}

func worstSeverity(issues []models.ValidationIssue) models.Severity {
	var worst models.Severity
	for _, issue := range issues {
		if issue.Severity == models.SeverityError {
			return models.SeverityError
		}
		worst = models.SeverityWarning
	}
	return worst
}

// rowChecker accumulates the issues of one record.
type rowChecker struct {
	row    int
	record models.MappedRecord
	issues []models.ValidationIssue
}

func (c *rowChecker) add(field models.SchemaKey, sev models.Severity, format string, args ...interface{}) {
	c.issues = append(c.issues, models.ValidationIssue{
		Row:      c.row,
		Field:    string(field),
		Issue:    fmt.Sprintf(format, args...),
		Severity: sev,
	})
}

// present returns the record's value for key unless it is blank.
func (c *rowChecker) present(key models.SchemaKey) (interface{}, bool) {
	v, ok := c.record[key]
	if !ok || parser.IsBlank(v) {
		return nil, false
	}
	return v, true
}

// number parses a present value. ok is false when the field is absent;
// valid is false when it is present but not numeric.
func (c *rowChecker) number(key models.SchemaKey) (n float64, ok, valid bool) {
	v, ok := c.present(key)
	if !ok {
		return 0, false, false
	}
	n, valid = parser.ParseNumber(v)
	return n, true, valid
}

func (v *Validator) checkRecord(row int, record models.MappedRecord) []models.ValidationIssue {
	c := &rowChecker{row: row, record: record}

	for _, k := range models.CriticalFields {
		if _, ok := c.present(k); !ok {
			c.add(k, models.SeverityError, "Missing required field: %s", k)
		}
	}

	pd, pdOK := c.financial(models.KeyPDValue, models.SeverityError)
	bi, biOK := c.financial(models.KeyBIValue, models.SeverityError)
	tiv, tivOK := c.financial(models.KeyTotalInsurableValue, models.SeverityError)
	c.financial(models.KeyPDDeductibles, models.SeverityWarning)

	if pdOK && biOK && tivOK {
		c.checkTIV(tiv, pd+bi)
	}

	c.checkRange(models.KeyLatitude, -90, 90)
	c.checkRange(models.KeyLongitude, -180, 180)
	v.checkYearBuilt(c)
	c.checkStories()

	return c.issues
}

// financial validates a monetary field and reports whether it holds a
// usable, non-negative amount.
func (c *rowChecker) financial(key models.SchemaKey, parseSeverity models.Severity) (float64, bool) {
	n, ok, valid := c.number(key)
	if !ok {
		return 0, false
	}
	label := labelOf(key)
	if !valid {
		c.add(key, parseSeverity, "%s is not a valid number", label)
		return 0, false
	}
	if n < 0 {
		c.add(key, models.SeverityError, "%s is negative: $%s", label, formatNumber(n))
		return n, false
	}
	return n, true
}

func (c *rowChecker) checkTIV(tiv, sum float64) {
	denom := math.Max(tiv, sum)
	if denom == 0 {
		return
	}
	variance := math.Abs(tiv-sum) / denom
	if variance > tivVarianceTolerance {
		c.add(models.KeyTotalInsurableValue, models.SeverityWarning,
			"Total Insurable Value ($%s) differs from PD + BI ($%s) by %.1f%%",
			formatNumber(tiv), formatNumber(sum), variance*100)
	}
}

func (c *rowChecker) checkRange(key models.SchemaKey, lo, hi float64) {
	n, ok, valid := c.number(key)
	if !ok {
		return
	}
	label := labelOf(key)
	switch {
	case !valid:
		c.add(key, models.SeverityError, "%s is not a valid number", label)
	case n < lo || n > hi:
		c.add(key, models.SeverityError, "%s out of range [%s, %s]: %s",
			label, formatNumber(lo), formatNumber(hi), formatNumber(n))
	}
}

func (v *Validator) checkYearBuilt(c *rowChecker) {
	year, ok, valid := c.number(models.KeyYearBuilt)
	if !ok {
		return
	}
	switch {
	case !valid || year != math.Trunc(year):
		c.add(models.KeyYearBuilt, models.SeverityError, "Year Built is not a valid year")
	case year < minYearBuilt || year > float64(v.currentYear+futureYearAllowance):
		c.add(models.KeyYearBuilt, models.SeverityError, "Year Built out of range: %s", formatNumber(year))
	case year > float64(v.currentYear):
		c.add(models.KeyYearBuilt, models.SeverityWarning, "Year Built is in the future: %s", formatNumber(year))
	}
}

func (c *rowChecker) checkStories() {
	n, ok, valid := c.number(models.KeyNumberOfStories)
	if !ok {
		return
	}
	switch {
	case !valid:
		c.add(models.KeyNumberOfStories, models.SeverityError, "Number of Stories is not a valid number")
	case n < 0:
		c.add(models.KeyNumberOfStories, models.SeverityError, "Number of Stories is negative: %s", formatNumber(n))
	case n > maxStories:
		c.add(models.KeyNumberOfStories, models.SeverityWarning, "Number of Stories is unusually high: %s", formatNumber(n))
	}
}

func labelOf(key models.SchemaKey) string {
	for _, f := range models.SchemaFields {
		if f.Key == key {
			return f.Label
		}
	}
	return string(key)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
