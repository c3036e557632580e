// Package mapper resolves detected column headers onto the canonical SOV
// schema.
package mapper

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/completion"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
)

var errUnparseable = errors.New("unparseable column mapping")

// Mapper maps headers with the completion service and falls back to keyword
// rules when the service fails.
type Mapper struct {
	completer completion.Completer
	logger    *slog.Logger
}

// New creates a Mapper. A nil completer disables the AI path; a nil logger
// discards output.
func New(c completion.Completer, logger *slog.Logger) *Mapper {
	if c == nil {
		c = completion.Unavailable{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Mapper{completer: c, logger: logger}
}

// Map returns a mapping that holds every header as a key, and the path that
// produced it.
func (m *Mapper) Map(ctx context.Context, headers []string) (models.ColumnMapping, models.DecisionSource) {
	mapping, err := m.mapWithAI(ctx, headers)
	if err != nil {
		m.logger.Warn("column mapping fell back to keyword rules", "error", err, "headers", len(headers))
		return Fallback(headers), models.SourceRules
	}
	return mapping, models.SourceAI
}

func (m *Mapper) mapWithAI(ctx context.Context, headers []string) (models.ColumnMapping, error) {
	if len(headers) == 0 {
		return nil, errors.New("no headers to map")
	}

	prompt, err := buildPrompt(headers)
	if err != nil {
		return nil, err
	}

	text, err := m.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if !completion.DecodeLoose(text, &raw) {
		return nil, errUnparseable
	}

	return sanitize(headers, raw)
}

// sanitize restricts a raw reply to the input headers. Headers the reply
// omits, and values that are not canonical keys, become unmappable. Keys
// that are not input headers are dropped.
func sanitize(headers []string, raw map[string]interface{}) (models.ColumnMapping, error) {
	mapping := make(models.ColumnMapping, len(headers))
	answered := 0
	for _, h := range headers {
		v, ok := raw[h]
		if ok {
			answered++
		}
		key, _ := v.(string)
		if models.IsSchemaKey(key) {
			mapping[h] = models.SchemaKey(key)
		} else {
			mapping[h] = ""
		}
	}
	if answered == 0 {
		return nil, errUnparseable
	}
	return mapping, nil
}

const mappingGuide = `Location & Address:
- "Location Number", "Loc No" → "locationNumber"
- "Property", "Building Name" → "property"
- "Street Address", "Address" → "streetAddress"
- "Suburb", "City" → "suburb"
- "State", "Province" → "state"
- "Postal / ZIP Code", "ZIP" → "postalZipCode"
- "Cresta Zone", "CRESTA" → "crestaZone"
- "Country" → "country"

Financial Values:
- "PD Value", "Property Damage" → "pdValue"
- "BI Value", "Business Interruption" → "biValue"
- "Total Insurable Value", "TIV" → "totalInsurableValue"
- "PD Deductibles", "Deductible" → "pdDeductibles"

Property Details:
- "Occupancy", "Building Type" → "occupancy"
- "Construction Class", "Construction" → "constructionClass"
- "Roof Type", "Roof" → "roofType"
- "Number of Stories", "Stories" → "numberOfStories"
- "Year Built", "Built" → "yearBuilt"

Coordinates & Risk:
- "Latitude", "Lat" → "latitude"
- "Longitude", "Long", "Lng" → "longitude"
- "Fluvial Flood", "Flood" → "fluvialFlood"
- "Storm Surge" → "originalStormSurge"
- "PF Risk Level" → "originalPfRiskLevel"
- "Windstorm", "Hailstorm", "Wildfire", "Severity" → "windstorm", "hailstorm", "wildfire", "severity"`

func buildPrompt(headers []string) (string, error) {
	detected, err := json.Marshal(headers)
	if err != nil {
		return "", err
	}
	keys, err := json.Marshal(models.SchemaKeys())
	if err != nil {
		return "", err
	}

	return strings.Join([]string{
		"Map these Excel columns to our standard schema:",
		"",
		"DETECTED COLUMNS: " + string(detected),
		"TARGET SCHEMA KEYS: " + string(keys),
		"",
		mappingGuide,
		"",
		"Return ONLY valid JSON mapping object:",
		"{",
		`  "detectedColumn1": "targetSchemaKey",`,
		`  "detectedColumn2": "targetSchemaKey",`,
		`  "unmappableColumn": null`,
		"}",
	}, "\n"), nil
}
