// Package output serializes processing results.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
)

// Format selects how a result is written.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML, FormatTable:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be json, yaml, or table)", s)
	}
}

// ToJSON serializes a result to JSON.
func ToJSON(result *models.Result, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

// ToYAML serializes a result to YAML. Field names and null handling follow
// the JSON encoding.
func ToYAML(result *models.Result) ([]byte, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(data)
}

// Write renders result to w in the given format.
func Write(w io.Writer, result *models.Result, format Format, pretty bool) error {
	switch format {
	case FormatTable:
		return RenderSummary(w, result)
	case FormatYAML:
		data, err := ToYAML(result)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		data, err := ToJSON(result, pretty)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}
