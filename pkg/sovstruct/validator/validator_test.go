package validator_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/validator"
)

const currentYear = 2025

var fullMapping = models.ColumnMapping{
	"Loc":        models.KeyLocationNumber,
	"Address":    models.KeyStreetAddress,
	"Country":    models.KeyCountry,
	"Occupancy":  models.KeyOccupancy,
	"PD":         models.KeyPDValue,
	"BI":         models.KeyBIValue,
	"TIV":        models.KeyTotalInsurableValue,
	"Deductible": models.KeyPDDeductibles,
}

// complete returns a record with every critical field filled in, updated
// with extra.
func complete(extra models.MappedRecord) models.MappedRecord {
	r := models.MappedRecord{
		models.KeyLocationNumber: int64(1),
		models.KeyStreetAddress:  "1 Main St",
		models.KeyCountry:        "Australia",
		models.KeyOccupancy:      "Office",
	}
	for k, v := range extra {
		r[k] = v
	}
	return r
}

func TestValidateRow(t *testing.T) {
	tests := []struct {
		name       string
		record     models.MappedRecord
		wantFields []string
		wantSev    []models.Severity
	}{
		{
			name:   "clean row",
			record: complete(nil),
		},
		{
			name:   "zero pd and bi are valid",
			record: complete(models.MappedRecord{models.KeyPDValue: int64(0), models.KeyBIValue: 0.0}),
		},
		{
			name:       "negative pd",
			record:     complete(models.MappedRecord{models.KeyPDValue: int64(-100)}),
			wantFields: []string{"pdValue"},
			wantSev:    []models.Severity{models.SeverityError},
		},
		{
			name:       "negative deductible",
			record:     complete(models.MappedRecord{models.KeyPDDeductibles: "-5"}),
			wantFields: []string{"pdDeductibles"},
			wantSev:    []models.Severity{models.SeverityError},
		},
		{
			name:       "unparsable bi",
			record:     complete(models.MappedRecord{models.KeyBIValue: "TBC"}),
			wantFields: []string{"biValue"},
			wantSev:    []models.Severity{models.SeverityError},
		},
		{
			name:       "free text deductible",
			record:     complete(models.MappedRecord{models.KeyPDDeductibles: "5% of loss"}),
			wantFields: []string{"pdDeductibles"},
			wantSev:    []models.Severity{models.SeverityWarning},
		},
		{
			name:   "currency formatted amounts",
			record: complete(models.MappedRecord{models.KeyPDValue: "$1,000,000", models.KeyPDDeductibles: "£ 2,500"}),
		},
		{
			name: "tiv variance above tolerance",
			record: complete(models.MappedRecord{
				models.KeyPDValue:             int64(600000),
				models.KeyBIValue:             int64(400000),
				models.KeyTotalInsurableValue: int64(1200000),
			}),
			wantFields: []string{"totalInsurableValue"},
			wantSev:    []models.Severity{models.SeverityWarning},
		},
		{
			name: "tiv variance within tolerance",
			record: complete(models.MappedRecord{
				models.KeyPDValue:             int64(600000),
				models.KeyBIValue:             int64(400000),
				models.KeyTotalInsurableValue: int64(1050000),
			}),
		},
		{
			name: "all zero tiv",
			record: complete(models.MappedRecord{
				models.KeyPDValue:             int64(0),
				models.KeyBIValue:             int64(0),
				models.KeyTotalInsurableValue: int64(0),
			}),
		},
		{
			name: "tiv without bi is not cross-checked",
			record: complete(models.MappedRecord{
				models.KeyPDValue:             int64(100),
				models.KeyTotalInsurableValue: int64(900),
			}),
		},
		{
			name:       "latitude out of range",
			record:     complete(models.MappedRecord{models.KeyLatitude: 91.0, models.KeyLongitude: 151.2}),
			wantFields: []string{"latitude"},
			wantSev:    []models.Severity{models.SeverityError},
		},
		{
			name:       "longitude unparsable",
			record:     complete(models.MappedRecord{models.KeyLatitude: -33.8, models.KeyLongitude: "east"}),
			wantFields: []string{"longitude"},
			wantSev:    []models.Severity{models.SeverityError},
		},
		{
			name:       "non-finite coordinates",
			record:     complete(models.MappedRecord{models.KeyLatitude: "NaN", models.KeyLongitude: math.Inf(1)}),
			wantFields: []string{"latitude", "longitude"},
			wantSev:    []models.Severity{models.SeverityError, models.SeverityError},
		},
		{
			name:       "non-finite financials",
			record:     complete(models.MappedRecord{models.KeyPDValue: math.NaN(), models.KeyBIValue: "inf", models.KeyTotalInsurableValue: "Infinity"}),
			wantFields: []string{"pdValue", "biValue", "totalInsurableValue"},
			wantSev:    []models.Severity{models.SeverityError, models.SeverityError, models.SeverityError},
		},
		{
			name:   "coordinate bounds inclusive",
			record: complete(models.MappedRecord{models.KeyLatitude: -90.0, models.KeyLongitude: "180"}),
		},
		{
			name:       "year built in near future",
			record:     complete(models.MappedRecord{models.KeyYearBuilt: int64(currentYear + 3)}),
			wantFields: []string{"yearBuilt"},
			wantSev:    []models.Severity{models.SeverityWarning},
		},
		{
			name:       "year built too far ahead",
			record:     complete(models.MappedRecord{models.KeyYearBuilt: int64(currentYear + 6)}),
			wantFields: []string{"yearBuilt"},
			wantSev:    []models.Severity{models.SeverityError},
		},
		{
			name:       "year built too old",
			record:     complete(models.MappedRecord{models.KeyYearBuilt: "1799"}),
			wantFields: []string{"yearBuilt"},
			wantSev:    []models.Severity{models.SeverityError},
		},
		{
			name:       "year built unparsable",
			record:     complete(models.MappedRecord{models.KeyYearBuilt: "circa 1900"}),
			wantFields: []string{"yearBuilt"},
			wantSev:    []models.Severity{models.SeverityError},
		},
		{
			name:   "year built current",
			record: complete(models.MappedRecord{models.KeyYearBuilt: int64(currentYear)}),
		},
		{
			name:       "stories above hundred",
			record:     complete(models.MappedRecord{models.KeyNumberOfStories: int64(101)}),
			wantFields: []string{"numberOfStories"},
			wantSev:    []models.Severity{models.SeverityWarning},
		},
		{
			name:       "stories negative",
			record:     complete(models.MappedRecord{models.KeyNumberOfStories: int64(-1)}),
			wantFields: []string{"numberOfStories"},
			wantSev:    []models.Severity{models.SeverityError},
		},
		{
			name:       "stories unparsable",
			record:     complete(models.MappedRecord{models.KeyNumberOfStories: "several"}),
			wantFields: []string{"numberOfStories"},
			wantSev:    []models.Severity{models.SeverityError},
		},
		{
			name:       "missing critical fields",
			record:     models.MappedRecord{models.KeyStreetAddress: "  ", models.KeyCountry: "NZ"},
			wantFields: []string{"locationNumber", "streetAddress", "occupancy"},
			wantSev:    []models.Severity{models.SeverityError, models.SeverityError, models.SeverityError},
		},
	}

	v := validator.New(currentYear)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := v.Validate([]models.MappedRecord{tt.record}, fullMapping)

			var fields []string
			var sevs []models.Severity
			for _, issue := range summary.Issues {
				assert.Equal(t, 2, issue.Row)
				fields = append(fields, issue.Field)
				sevs = append(sevs, issue.Severity)
			}
			assert.Equal(t, tt.wantFields, fields)
			assert.Equal(t, tt.wantSev, sevs)

			switch {
			case len(tt.wantSev) == 0:
				assert.Equal(t, 1, summary.SuccessfulRows)
			case containsError(tt.wantSev):
				assert.Equal(t, 1, summary.ErrorRows)
			default:
				assert.Equal(t, 1, summary.WarningRows)
			}
		})
	}
}

func containsError(sevs []models.Severity) bool {
	for _, s := range sevs {
		if s == models.SeverityError {
			return true
		}
	}
	return false
}

func TestValidateIssueMessages(t *testing.T) {
	v := validator.New(currentYear)
	summary := v.Validate([]models.MappedRecord{
		{models.KeyPDValue: int64(-100)},
	}, fullMapping)

	require.NotEmpty(t, summary.Issues)
	assert.Equal(t, "Missing required field: locationNumber", summary.Issues[0].Issue)
	assert.Equal(t, "PD Value is negative: $-100", summary.Issues[len(summary.Issues)-1].Issue)
}

func TestCriticalMissingIgnoresRowContent(t *testing.T) {
	mapping := models.ColumnMapping{
		"Loc":     models.KeyLocationNumber,
		"Address": models.KeyStreetAddress,
		"Country": models.KeyCountry,
		"Use":     "",
	}
	records := []models.MappedRecord{complete(nil)}

	summary := validator.New(currentYear).Validate(records, mapping)
	assert.Equal(t, []string{"occupancy"}, summary.CriticalMissing)
	assert.Equal(t, 1, summary.SuccessfulRows)
}

func TestCriticalMissingOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"locationNumber", "streetAddress", "country", "occupancy"},
		validator.CriticalMissing(models.ColumnMapping{"x": ""}))
	assert.Empty(t, validator.CriticalMissing(fullMapping))
}

func TestValidateBucketsSumAndIssueCap(t *testing.T) {
	var records []models.MappedRecord
	for i := 0; i < 40; i++ {
		switch i % 3 {
		case 0:
			records = append(records, complete(nil))
		case 1:
			records = append(records, complete(models.MappedRecord{models.KeyNumberOfStories: int64(150)}))
		default:
			// Four missing fields plus a bad PD value: five errors per row.
			records = append(records, models.MappedRecord{models.KeyPDValue: fmt.Sprintf("bad-%d", i)})
		}
	}

	summary := validator.New(currentYear).Validate(records, fullMapping)

	assert.Equal(t, 40, summary.TotalRows)
	assert.Equal(t, summary.TotalRows, summary.SuccessfulRows+summary.WarningRows+summary.ErrorRows)
	assert.Equal(t, 14, summary.SuccessfulRows)
	assert.Equal(t, 13, summary.WarningRows)
	assert.Equal(t, 13, summary.ErrorRows)

	assert.Len(t, summary.Issues, validator.MaxReportedIssues)
	assert.Equal(t, 13+13*5, summary.TotalIssues)
}

func TestValidateRowNumbers(t *testing.T) {
	summary := validator.New(currentYear).Validate([]models.MappedRecord{
		complete(nil),
		complete(models.MappedRecord{models.KeyLatitude: 200.0}),
	}, fullMapping)

	require.Len(t, summary.Issues, 1)
	assert.Equal(t, 3, summary.Issues[0].Row)
}

func TestValidateNoRecords(t *testing.T) {
	summary := validator.New(currentYear).Validate(nil, fullMapping)
	assert.Zero(t, summary.TotalRows)
	assert.NotNil(t, summary.Issues)
	assert.Empty(t, summary.Issues)
}
