// Package classifier decides which sheets of a workbook hold property records.
package classifier

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

// errUnparseable marks a completion whose text held no usable classification.
var errUnparseable = errors.New("unparseable sheet classification")

// defaultReason is used when a profile carries no reasons.
const defaultReason = "Rule-based classification"

// Classifier classifies sheets with the completion service and falls back to
// the structural profile when the service fails.
type Classifier struct {
	completer completion.Completer
	logger    *slog.Logger
}

// New creates a Classifier. A nil completer disables the AI path; a nil
// logger discards output.
func New(c completion.Completer, logger *slog.Logger) *Classifier {
	if c == nil {
		c = completion.Unavailable{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Classifier{completer: c, logger: logger}
}

// Classify returns exactly one classification per profile, in profile order,
// and the path that produced them.
func (c *Classifier) Classify(ctx context.Context, profiles []models.SheetProfile) ([]models.SheetClassification, models.DecisionSource) {
	if len(profiles) == 0 {
		return nil, models.SourceRules
	}

	parsed, err := c.classifyWithAI(ctx, profiles)
	if err != nil {
		c.logger.Warn("sheet classification fell back to rules", "error", err)
		return Fallback(profiles), models.SourceRules
	}

	return reconcile(profiles, parsed), models.SourceAI
}

func (c *Classifier) classifyWithAI(ctx context.Context, profiles []models.SheetProfile) ([]models.SheetClassification, error) {
	prompt, err := buildPrompt(profiles)
	if err != nil {
		return nil, err
	}

	text, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed []models.SheetClassification
	if !completion.DecodeLoose(text, &parsed) {
		return nil, errUnparseable
	}

	// A reply naming none of the sheets is as useless as an unparseable one.
	for _, p := range profiles {
		for _, cl := range parsed {
			if cl.SheetName == p.Name {
				return parsed, nil
			}
		}
	}
	return nil, errUnparseable
}

// reconcile indexes the AI output by sheet name. The first entry for a name
// wins; unknown names are dropped; sheets the reply omits get their
// rule-based classification.
func reconcile(profiles []models.SheetProfile, parsed []models.SheetClassification) []models.SheetClassification {
	byName := make(map[string]models.SheetClassification, len(parsed))
	for _, cl := range parsed {
		if _, seen := byName[cl.SheetName]; !seen {
			byName[cl.SheetName] = cl
		}
	}

	out := make([]models.SheetClassification, 0, len(profiles))
	for _, p := range profiles {
		if cl, ok := byName[p.Name]; ok {
			out = append(out, cl)
			continue
		}
		out = append(out, fromProfile(p))
	}
	return out
}

// Fallback classifies every sheet from its structural profile alone.
func Fallback(profiles []models.SheetProfile) []models.SheetClassification {
	out := make([]models.SheetClassification, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, fromProfile(p))
	}
	return out
}

func fromProfile(p models.SheetProfile) models.SheetClassification {
	reason := strings.Join(p.Reasons, "; ")
	if reason == "" {
		reason = defaultReason
	}
	return models.SheetClassification{
		SheetName:     p.Name,
		ShouldProcess: p.LikelyData(),
		Type:          string(p.RuleBasedType),
		Confidence:    p.RuleBasedConfidence,
		Reason:        reason,
	}
}

type promptSheet struct {
	Name       string        `json:"name"`
	Headers    []string      `json:"headers"`
	RowCount   int           `json:"rowCount"`
	SampleData []interface{} `json:"sampleData"`
}

func buildPrompt(profiles []models.SheetProfile) (string, error) {
	sheets := make([]promptSheet, 0, len(profiles))
	for _, p := range profiles {
		sample := []interface{}{}
		if len(p.SampleRows) > 0 {
			sample = p.SampleRows[0]
		}
		headers := p.HeaderRow
		if headers == nil {
			headers = []string{}
		}
		sheets = append(sheets, promptSheet{
			Name:       p.Name,
			Headers:    headers,
			RowCount:   p.RowCount,
			SampleData: sample,
		})
	}

	analysis, err := json.MarshalIndent(sheets, "", "  ")
	if err != nil {
		return "", err
	}

	return strings.Join([]string{
		"Analyze these Excel sheets to identify which contain property insurance data vs summaries/templates.",
		"",
		"SHEET ANALYSIS:",
		string(analysis),
		"",
		"Return JSON array with sheet classifications:",
		"[",
		"  {",
		`    "sheetName": "Sheet1",`,
		`    "shouldProcess": true,`,
		`    "type": "data",`,
		`    "confidence": 0.95,`,
		`    "reason": "Contains property data with financial values"`,
		"  }",
		"]",
		"",
		`Be conservative - only classify as "data" if confident it contains actual property listings.`,
		"Return ONLY the JSON array, no other text.",
	}, "\n"), nil
}
