// Package analyzer profiles the structure of each sheet to guess its role.
package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/parser"
)

// MaxSampleRows is the number of non-blank rows kept after the header.
const MaxSampleRows = 5

// nonDataSheetTokens mark sheets whose name alone identifies them as summaries.
var nonDataSheetTokens = []string{
	"summary", "overview", "dashboard", "contents", "index", "instructions",
}

// insuranceKeywords are matched against the joined, lower-cased header row.
var insuranceKeywords = []string{
	"location", "property", "address", "building", "occupancy",
	"pd value", "bi value", "tiv", "limit", "sum insured",
	"construction", "latitude", "longitude", "risk",
}

const (
	minDataKeywords    = 3
	keywordSaturation  = 6.0
	wideHeaderCells    = 5
	templateMaxRows    = 5
	highRowCount       = 20
	highRowCountBoost  = 0.2
	numericSampleBoost = 0.3
)

// Analyzer builds SheetProfiles.
type Analyzer struct{}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// AnalyzeWorkbook profiles every sheet in workbook order.
func (a *Analyzer) AnalyzeWorkbook(wb *models.WorkbookData) []models.SheetProfile {
	profiles := make([]models.SheetProfile, 0, len(wb.Sheets))
	for _, sheet := range wb.Sheets {
		profiles = append(profiles, a.Analyze(sheet))
	}
	return profiles
}

// Analyze profiles a single sheet.
func (a *Analyzer) Analyze(sheet models.SheetGrid) models.SheetProfile {
	grid := sheet.Rows
	profile := models.SheetProfile{
		Name:          sheet.Name,
		RowCount:      len(grid),
		RuleBasedType: models.SheetTypeUnknown,
		UsedRange:     parser.UsedRange(grid),
		Density:       parser.Density(grid),
	}
	if len(grid) > 0 {
		profile.HeaderRow = parser.RowText(grid[0])
	}

	if len(grid) <= 1 {
		profile.IsEmpty = true
		profile.RuleBasedType = models.SheetTypeEmpty
		profile.Reasons = append(profile.Reasons, "Sheet is empty")
		return profile
	}

	for _, row := range grid[1:] {
		if len(profile.SampleRows) == MaxSampleRows {
			break
		}
		if !parser.IsBlankRow(row) {
			profile.SampleRows = append(profile.SampleRows, row)
		}
	}

	if nameSuggestsSummary(sheet.Name) {
		profile.RuleBasedType = models.SheetTypeSummary
		profile.Reasons = append(profile.Reasons, "Sheet name suggests summary/overview")
		return profile
	}

	headerCells := len(profile.HeaderRow)
	switch {
	case headerCells > wideHeaderCells:
		matched := matchKeywords(profile.HeaderRow)
		if matched < minDataKeywords {
			profile.Reasons = append(profile.Reasons,
				fmt.Sprintf("Only %d insurance-related headers", matched))
			break
		}
		profile.RuleBasedType = models.SheetTypeData
		profile.RuleBasedConfidence = math.Min(float64(matched)/keywordSaturation, 1)
		profile.Reasons = append(profile.Reasons,
			fmt.Sprintf("Contains %d insurance-related headers", matched))

		// Boosts are additive; confidence may exceed 1.
		if profile.RowCount > highRowCount {
			profile.RuleBasedConfidence += highRowCountBoost
			profile.Reasons = append(profile.Reasons,
				fmt.Sprintf("High row count: %d rows", profile.RowCount))
		}
		if hasNumericCell(profile.SampleRows) {
			profile.RuleBasedConfidence += numericSampleBoost
			profile.Reasons = append(profile.Reasons, "Contains numerical financial data")
		}
	case profile.RowCount < templateMaxRows:
		profile.RuleBasedType = models.SheetTypeTemplate
		profile.Reasons = append(profile.Reasons, "Low row count suggests template/example")
	default:
		profile.Reasons = append(profile.Reasons, "No recognisable data layout")
	}

	return profile
}

func nameSuggestsSummary(name string) bool {
	lower := parser.Fold(name)
	for _, token := range nonDataSheetTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func matchKeywords(headers []string) int {
	text := parser.Fold(strings.Join(headers, " "))
	matched := 0
	for _, kw := range insuranceKeywords {
		if strings.Contains(text, kw) {
			matched++
		}
	}
	return matched
}

func hasNumericCell(rows []models.Row) bool {
	for _, row := range rows {
		for _, cell := range row {
			if parser.IsNumericLike(cell) {
				return true
			}
		}
	}
	return false
}
