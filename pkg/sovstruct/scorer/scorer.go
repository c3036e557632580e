// Package scorer rates how much of a column mapping is usable.
package scorer

import "github.com/ukaji3/sovstruct/pkg/sovstruct/models"

const (
	coverageWeight = 0.5
	criticalWeight = 0.5
)

// Confidence returns 0.5 × the share of mapped columns plus 0.5 × the share
// of critical fields covered. An empty mapping scores its coverage term as 0.
func Confidence(mapping models.ColumnMapping) float64 {
	coverage := 0.0
	if len(mapping) > 0 {
		coverage = float64(mapping.MappedCount()) / float64(len(mapping))
	}

	covered := 0
	for _, k := range models.CriticalFields {
		if mapping.Covers(k) {
			covered++
		}
	}
	critical := float64(covered) / float64(len(models.CriticalFields))

	return coverageWeight*coverage + criticalWeight*critical
}
