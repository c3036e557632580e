package sovstruct

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/analyzer"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/classifier"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/mapper"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/parser"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/projector"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/scorer"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/validator"
)

const (
	// selectionThreshold is the classification confidence a sheet must
	// exceed to be retained.
	selectionThreshold = 0.5

	fallbackSheetConfidence = 0.5
	fallbackSheetReason     = "Fallback to first sheet"
)

// ProcessFile reads the workbook at path and processes it.
func ProcessFile(ctx context.Context, path string, opts Options) (*models.Result, error) {
	wb, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Process(ctx, wb, opts)
}

// ProcessReader reads a workbook from r and processes it. name selects the
// format (".xlsx", ".csv", ...).
func ProcessReader(ctx context.Context, r io.Reader, name string, opts Options) (*models.Result, error) {
	wb, err := ReadReader(r, name)
	if err != nil {
		return nil, err
	}
	return Process(ctx, wb, opts)
}

// retainedSheet is a sheet selected for projection.
type retainedSheet struct {
	info  models.ProcessedSheet
	table parser.DetectedTable
}

// Process runs the pipeline over an in-memory workbook. Completion failures
// never fail the run; only structural problems do.
func Process(ctx context.Context, wb *models.WorkbookData, opts Options) (*models.Result, error) {
	if wb == nil || len(wb.Sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	runID := uuid.NewString()
	logger := opts.logger().With("run_id", runID, "book", wb.BookName)

	logger.Debug("analyzing sheets", "sheets", len(wb.Sheets))
	profiles := analyzer.New().AnalyzeWorkbook(wb)

	logger.Debug("classifying sheets")
	classifications, classSource := classifier.New(opts.completer(), logger).Classify(ctx, profiles)

	retained := selectSheets(wb, classifications)
	dataRows := 0
	for _, s := range retained {
		dataRows += s.info.RowCount
	}
	logger.Debug("selected sheets", "retained", len(retained), "data_rows", dataRows)
	if dataRows == 0 {
		return nil, ErrNoDataRows
	}

	headers := retained[0].table.Headers
	if headers == nil {
		headers = []string{}
	}

	logger.Debug("mapping columns", "headers", len(headers))
	mapping, mappingSource := mapper.New(opts.completer(), logger).Map(ctx, headers)

	tables := make([]parser.DetectedTable, len(retained))
	processed := make([]models.ProcessedSheet, len(retained))
	for i, s := range retained {
		tables[i] = s.table
		processed[i] = s.info
	}
	records := projector.ProjectAll(tables, mapping)

	logger.Debug("validating records", "records", len(records))
	summary := validator.New(opts.now().Year()).Validate(records, mapping)
	confidence := scorer.Confidence(mapping)

	logger.Info("workbook processed",
		slog.Int("rows", len(records)),
		slog.Float64("confidence", confidence),
		slog.String("classification_source", string(classSource)),
		slog.String("mapping_source", string(mappingSource)),
		slog.Int("error_rows", summary.ErrorRows),
	)

	return &models.Result{
		RunID:    runID,
		BookName: wb.BookName,
		Analysis: models.WorkbookAnalysis{
			TotalSheets:          len(wb.Sheets),
			Profiles:             profiles,
			Classifications:      classifications,
			ClassificationSource: classSource,
			ProcessedSheets:      processed,
			MultiSheet:           len(retained) > 1,
		},
		Headers:       headers,
		Mapping:       mapping,
		MappingSource: mappingSource,
		Records:       records,
		Confidence:    confidence,
		Validation:    summary,
	}, nil
}

// selectSheets keeps, in workbook order, the sheets classified for
// processing with confidence above the threshold. When none qualify the
// first sheet is used.
func selectSheets(wb *models.WorkbookData, classifications []models.SheetClassification) []retainedSheet {
	byName := make(map[string]models.SheetClassification, len(classifications))
	for _, c := range classifications {
		byName[c.SheetName] = c
	}

	var retained []retainedSheet
	for _, sheet := range wb.Sheets {
		c, ok := byName[sheet.Name]
		if !ok || !c.ShouldProcess || c.Confidence <= selectionThreshold {
			continue
		}
		retained = append(retained, newRetained(sheet, c.Confidence, c.Reason))
	}

	if len(retained) == 0 {
		retained = append(retained, newRetained(wb.Sheets[0], fallbackSheetConfidence, fallbackSheetReason))
	}
	return retained
}

func newRetained(sheet models.SheetGrid, confidence float64, reason string) retainedSheet {
	table := parser.DetectTable(sheet.Rows)
	headers := table.Headers
	if headers == nil {
		headers = []string{}
	}
	return retainedSheet{
		info: models.ProcessedSheet{
			Name:       sheet.Name,
			Headers:    headers,
			RowCount:   len(table.DataRows),
			Confidence: confidence,
			Reason:     reason,
		},
		table: table,
	}
}
