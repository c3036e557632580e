package sovstruct_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sovstruct/internal/testutil"
	"github.com/ukaji3/sovstruct/pkg/sovstruct"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/completion"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/export"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
)

var header = []interface{}{
	"Location Number", "Property Name", "Street Address", "Country", "Occupancy",
	"PD Value", "BI Value", "Total Insurable Value", "Year Built",
}

func locationRows(prefix string, n int) [][]interface{} {
	rows := [][]interface{}{header}
	for i := 1; i <= n; i++ {
		rows = append(rows, []interface{}{
			fmt.Sprintf("%s-%d", prefix, i), "Warehouse", fmt.Sprintf("%d Main St", i), "Australia", "Industrial",
			600000, 400000, 1000000, 1990,
		})
	}
	return rows
}

func failingCompleter() completion.Completer {
	return completion.CompleterFunc(func(context.Context, string) (string, error) {
		return "", &completion.ServiceError{StatusCode: 502, Body: "bad gateway"}
	})
}

func fixedNow() time.Time {
	return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func TestProcessFileMultiSheetFallback(t *testing.T) {
	path := testutil.SaveWorkbook(t, "sov.xlsx",
		testutil.Sheet{Name: "Summary", Rows: locationRows("S", 30)},
		testutil.Sheet{Name: "Site A", Rows: locationRows("A", 25)},
		testutil.Sheet{Name: "Notes", Rows: [][]interface{}{{"Prepared by broker"}}},
		testutil.Sheet{Name: "Site B", Rows: locationRows("B", 25)},
	)

	result, err := sovstruct.ProcessFile(context.Background(), path, sovstruct.Options{
		Completer: failingCompleter(),
		Logger:    testutil.NewTestLogger(t),
		Now:       fixedNow,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "sov.xlsx", result.BookName)

	analysis := result.Analysis
	assert.Equal(t, 4, analysis.TotalSheets)
	assert.Equal(t, models.SourceRules, analysis.ClassificationSource)
	require.Len(t, analysis.Classifications, 4)
	assert.Equal(t, "summary", analysis.Classifications[0].Type)
	assert.False(t, analysis.Classifications[0].ShouldProcess)

	require.Len(t, analysis.ProcessedSheets, 2)
	assert.Equal(t, "Site A", analysis.ProcessedSheets[0].Name)
	assert.Equal(t, "Site B", analysis.ProcessedSheets[1].Name)
	assert.Equal(t, 25, analysis.ProcessedSheets[0].RowCount)
	assert.True(t, analysis.MultiSheet)

	assert.Equal(t, models.SourceRules, result.MappingSource)
	assert.Equal(t, models.KeyLocationNumber, result.Mapping["Location Number"])
	assert.Equal(t, models.KeyTotalInsurableValue, result.Mapping["Total Insurable Value"])
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)

	require.Len(t, result.Records, 50)
	assert.Equal(t, "A-1", result.Records[0][models.KeyLocationNumber])
	assert.Equal(t, "B-25", result.Records[49][models.KeyLocationNumber])

	v := result.Validation
	assert.Equal(t, 50, v.TotalRows)
	assert.Equal(t, 50, v.SuccessfulRows)
	assert.Empty(t, v.CriticalMissing)
}

func TestProcessFallsBackToFirstSheet(t *testing.T) {
	wb := &models.WorkbookData{
		BookName: "odd.xlsx",
		Sheets: []models.SheetGrid{
			{Name: "Data", Rows: models.CellGrid{
				{"Loc No", "Situation", "Sum"},
				{int64(1), "1 Main St", int64(100)},
				{int64(2), "2 Main St", int64(-5)},
			}},
			{Name: "Other", Rows: models.CellGrid{{"x"}}},
		},
	}

	result, err := sovstruct.Process(context.Background(), wb, sovstruct.Options{
		Logger: testutil.NewTestLogger(t),
		Now:    fixedNow,
	})
	require.NoError(t, err)

	require.Len(t, result.Analysis.ProcessedSheets, 1)
	ps := result.Analysis.ProcessedSheets[0]
	assert.Equal(t, "Data", ps.Name)
	assert.Equal(t, 0.5, ps.Confidence)
	assert.Equal(t, "Fallback to first sheet", ps.Reason)
	assert.False(t, result.Analysis.MultiSheet)

	assert.Equal(t, []string{"Loc No", "Situation", "Sum"}, result.Headers)
	assert.Equal(t, models.KeyLocationNumber, result.Mapping["Loc No"])
	assert.Len(t, result.Records, 2)
	assert.ElementsMatch(t, []string{"streetAddress", "country", "occupancy"}, result.Validation.CriticalMissing)
	assert.Equal(t, 2, result.Validation.ErrorRows)
}

func TestProcessUsesCompletionReplies(t *testing.T) {
	var calls []string
	completer := completion.CompleterFunc(func(_ context.Context, prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Analyze these Excel sheets"):
			calls = append(calls, "classify")
			return `[{"sheetName":"Book","shouldProcess":true,"type":"data","confidence":0.9,"reason":"rows of sites"}]`, nil
		case strings.Contains(prompt, "Map these Excel columns"):
			calls = append(calls, "map")
			return "```json\n" + `{"Site":"locationNumber","Situation":"streetAddress","Nation":"country","Use":"occupancy"}` + "\n```", nil
		}
		return "", errors.New("unexpected prompt")
	})

	wb := &models.WorkbookData{
		BookName: "ai.xlsx",
		Sheets: []models.SheetGrid{{Name: "Book", Rows: models.CellGrid{
			{"Site", "Situation", "Nation", "Use"},
			{"S1", "1 Main St", "NZ", "Retail"},
		}}},
	}

	result, err := sovstruct.Process(context.Background(), wb, sovstruct.Options{
		Completer: completer,
		Logger:    testutil.NewTestLogger(t),
		Now:       fixedNow,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"classify", "map"}, calls)
	assert.Equal(t, models.SourceAI, result.Analysis.ClassificationSource)
	assert.Equal(t, models.SourceAI, result.MappingSource)
	assert.Equal(t, "rows of sites", result.Analysis.ProcessedSheets[0].Reason)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "NZ", result.Records[0][models.KeyCountry])
	assert.Equal(t, 1, result.Validation.SuccessfulRows)
}

func TestProcessStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		wb   *models.WorkbookData
		want error
	}{
		{name: "nil workbook", wb: nil, want: sovstruct.ErrEmptyWorkbook},
		{name: "no sheets", wb: &models.WorkbookData{BookName: "x.xlsx"}, want: sovstruct.ErrEmptyWorkbook},
		{
			name: "header only",
			wb: &models.WorkbookData{Sheets: []models.SheetGrid{
				{Name: "Sheet1", Rows: models.CellGrid{{"Location Number", "Address"}}},
			}},
			want: sovstruct.ErrNoDataRows,
		},
		{
			name: "blank sheets",
			wb:   &models.WorkbookData{Sheets: []models.SheetGrid{{Name: "Sheet1"}, {Name: "Sheet2"}}},
			want: sovstruct.ErrNoDataRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sovstruct.Process(context.Background(), tt.wb, sovstruct.Options{Logger: testutil.NewTestLogger(t)})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProcessReaderCSV(t *testing.T) {
	input := "Location Number,Address,Country,Occupancy,Year Built\n" +
		"1,1 Main St,Australia,Office,2028\n" +
		"2,2 Main St,Australia,Office,1975\n"

	result, err := sovstruct.ProcessReader(context.Background(), strings.NewReader(input), "upload.csv", sovstruct.Options{
		Completer: failingCompleter(),
		Logger:    testutil.NewTestLogger(t),
		Now:       fixedNow,
	})
	require.NoError(t, err)

	assert.Equal(t, "upload.csv", result.BookName)
	require.Len(t, result.Records, 2)
	assert.Equal(t, 1, result.Validation.WarningRows, "year within five years ahead is a warning")
	assert.Equal(t, 1, result.Validation.SuccessfulRows)
}

func TestProcessReaderKeepsCellTextAndFlagsNonFinite(t *testing.T) {
	input := "Location Number,Address,Country,Occupancy,Postal Code,Latitude,PD Value\n" +
		"001,1 Main St,US,Office,02134,NaN,NaN\n"

	result, err := sovstruct.ProcessReader(context.Background(), strings.NewReader(input), "upload.csv", sovstruct.Options{
		Completer: failingCompleter(),
		Logger:    testutil.NewTestLogger(t),
		Now:       fixedNow,
	})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, "001", rec[models.KeyLocationNumber])
	assert.Equal(t, "02134", rec[models.KeyPostalZipCode])

	assert.Equal(t, 1, result.Validation.ErrorRows)
	assert.Equal(t, 0, result.Validation.SuccessfulRows)
	var fields []string
	for _, issue := range result.Validation.Issues {
		fields = append(fields, issue.Field)
	}
	assert.ElementsMatch(t, []string{"pdValue", "latitude"}, fields)

	var csvOut bytes.Buffer
	require.NoError(t, export.WriteCSV(&csvOut, result.Records))
	assert.Contains(t, csvOut.String(), "\n001,")
	assert.Contains(t, csvOut.String(), ",02134,")

	var xlsxOut bytes.Buffer
	require.NoError(t, export.WriteXLSX(&xlsxOut, result.Records))
	f, err := excelize.OpenReader(&xlsxOut)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "001", rows[1][0])
	assert.Equal(t, "02134", rows[1][5])
}

func TestProcessFileErrors(t *testing.T) {
	_, err := sovstruct.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"), sovstruct.DefaultOptions())
	assert.ErrorIs(t, err, sovstruct.ErrFileNotFound)

	var perr *sovstruct.ProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "open", perr.Stage)

	_, err = sovstruct.ProcessFile(context.Background(), "notes.txt", sovstruct.DefaultOptions())
	assert.ErrorIs(t, err, sovstruct.ErrUnsupportedFormat)

	corrupt := filepath.Join(t.TempDir(), "corrupt.xlsx")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a zip"), 0o644))
	_, err = sovstruct.ProcessFile(context.Background(), corrupt, sovstruct.DefaultOptions())
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "open", perr.Stage)
}

func TestReadFileKeepsSheetOrder(t *testing.T) {
	path := testutil.SaveWorkbook(t, "book.xlsx",
		testutil.Sheet{Name: "Summary"},
		testutil.Sheet{Name: "Locations", Rows: [][]interface{}{{"Location Number"}}},
		testutil.Sheet{Name: "Notes"},
	)

	wb, err := sovstruct.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Summary", "Locations", "Notes"}, wb.SheetNames())
	sheet, ok := wb.Sheet("Locations")
	require.True(t, ok)
	assert.Len(t, sheet.Rows, 1)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    sovstruct.Format
		wantErr bool
	}{
		{name: "a.xlsx", want: sovstruct.FormatXLSX},
		{name: "B.XLSM", want: sovstruct.FormatXLSX},
		{name: "c.csv", want: sovstruct.FormatCSV},
		{name: "d.xls", wantErr: true},
		{name: "noext", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sovstruct.DetectFormat(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, sovstruct.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
