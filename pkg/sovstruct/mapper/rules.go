package mapper

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
)

var numericHeader = regexp.MustCompile(`^\d+\.?\d*$`)

// headerRule maps a header to a schema key when match reports true.
type headerRule struct {
	match  func(h string) bool
	target models.SchemaKey
}

func containsAny(subs ...string) func(string) bool {
	return func(h string) bool {
		for _, s := range subs {
			if strings.Contains(h, s) {
				return true
			}
		}
		return false
	}
}

func either(preds ...func(string) bool) func(string) bool {
	return func(h string) bool {
		for _, p := range preds {
			if p(h) {
				return true
			}
		}
		return false
	}
}

func containsAll(preds ...func(string) bool) func(string) bool {
	return func(h string) bool {
		for _, p := range preds {
			if !p(h) {
				return false
			}
		}
		return true
	}
}

// hasWord matches whole words of the header, so "bi" does not fire inside
// "combined" nor "lat" inside "population".
func hasWord(words ...string) func(string) bool {
	return func(h string) bool {
		for _, tok := range tokenize(h) {
			for _, w := range words {
				if tok == w {
					return true
				}
			}
		}
		return false
	}
}

func tokenize(h string) []string {
	return strings.FieldsFunc(h, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func lacks(s string) func(string) bool {
	return func(h string) bool { return !strings.Contains(h, s) }
}

// headerRules are evaluated in order against the lower-cased header; the
// first match wins. Specific phrases precede the broad substrings they would
// otherwise be swallowed by ("building type" before "building", risk
// columns before "pd" and "bi"). Short abbreviations match whole words only.
var headerRules = []headerRule{
	{containsAll(hasWord("location", "loc"), either(hasWord("number", "no", "id"), containsAny("#"))), models.KeyLocationNumber},
	{containsAny("property damage"), models.KeyPDValue},
	{containsAny("occupancy", "building type"), models.KeyOccupancy},
	{containsAny("year built", "built"), models.KeyYearBuilt},
	{containsAll(hasWord("year"), containsAny("construct")), models.KeyYearBuilt},
	{containsAny("property", "building"), models.KeyProperty},
	{containsAny("address"), models.KeyStreetAddress},
	{containsAny("suburb", "city", "town"), models.KeySuburb},
	{either(hasWord("state"), containsAny("province")), models.KeyState},
	{containsAny("zip", "postal", "postcode"), models.KeyPostalZipCode},
	{containsAny("cresta"), models.KeyCrestaZone},
	{containsAny("country"), models.KeyCountry},
	{containsAny("flood"), models.KeyFluvialFlood},
	{containsAny("surge"), models.KeyOriginalStormSurge},
	{containsAny("pf risk"), models.KeyOriginalPFRiskLevel},
	{containsAny("windstorm"), models.KeyWindstorm},
	{containsAny("hailstorm"), models.KeyHailstorm},
	{containsAny("wildfire"), models.KeyWildfire},
	{containsAny("severity"), models.KeySeverity},
	{containsAny("construction"), models.KeyConstructionClass},
	{containsAny("roof"), models.KeyRoofType},
	{containsAny("stories", "storeys"), models.KeyNumberOfStories},
	{containsAny("deduct"), models.KeyPDDeductibles},
	{containsAll(hasWord("pd"), lacks("deduct")), models.KeyPDValue},
	{either(containsAny("business interruption"), hasWord("bi")), models.KeyBIValue},
	{containsAny("tiv", "total"), models.KeyTotalInsurableValue},
	{hasWord("lat", "latitude"), models.KeyLatitude},
	{hasWord("lon", "long", "lng", "longitude"), models.KeyLongitude},
}

// MatchHeader returns the schema key the keyword rules assign to header, or
// "" when the header is blank, numeric-looking or matches no rule.
func MatchHeader(header string) models.SchemaKey {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" || h == "null" || h == "undefined" || numericHeader.MatchString(h) {
		return ""
	}

	for _, rule := range headerRules {
		if rule.match(h) {
			return rule.target
		}
	}
	return ""
}

// Fallback maps every header with the keyword rules. It is a pure function of
// its input.
func Fallback(headers []string) models.ColumnMapping {
	mapping := make(models.ColumnMapping, len(headers))
	for _, h := range headers {
		mapping[h] = MatchHeader(h)
	}
	return mapping
}
