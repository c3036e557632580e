package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CellText renders a cell value as text. Empty cells render as "".
func CellText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprint(t)
	}
}

// IsBlank reports whether a cell is empty or whitespace-only text.
func IsBlank(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

// IsBlankRow reports whether every cell of row is blank.
func IsBlankRow(row models.Row) bool {
	for _, cell := range row {
		if !IsBlank(cell) {
			return false
		}
	}
	return true
}

// Fold lower-cases s for keyword matching.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

var numberReplacer = strings.NewReplacer(",", "", "$", "", "€", "", "£", "", " ", "", "\u00a0", "")

// ParseNumber converts a cell to a float. Numeric cells convert directly;
// text is accepted after removing thousands separators and currency symbols.
func ParseNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case string:
		s := numberReplacer.Replace(strings.TrimSpace(t))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// IsNumericLike reports whether a cell is numeric or numeric-parsable text.
func IsNumericLike(v interface{}) bool {
	_, ok := ParseNumber(v)
	return ok
}
