// Package projector turns data rows into schema-shaped records.
package projector

import (
	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/parser"
)

// Project builds one record per data row of table. Each column is looked up
// in mapping by the table's own header text; unmapped columns and blank
// cells are skipped. When two columns map to the same key, the rightmost
// non-blank cell wins.
func Project(table parser.DetectedTable, mapping models.ColumnMapping) []models.MappedRecord {
	targets := make([]models.SchemaKey, len(table.Headers))
	for i, h := range table.Headers {
		targets[i] = mapping[h]
	}

	records := make([]models.MappedRecord, 0, len(table.DataRows))
	for _, row := range table.DataRows {
		record := make(models.MappedRecord)
		for i, key := range targets {
			if key == "" {
				continue
			}
			v := row.Cell(i)
			if parser.IsBlank(v) {
				continue
			}
			record[key] = v
		}
		records = append(records, record)
	}
	return records
}

// ProjectAll concatenates the records of every table in order. Rows are not
// deduplicated across tables.
func ProjectAll(tables []parser.DetectedTable, mapping models.ColumnMapping) []models.MappedRecord {
	var records []models.MappedRecord
	for _, t := range tables {
		records = append(records, Project(t, mapping)...)
	}
	return records
}
