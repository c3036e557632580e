package models

// SchemaKey is a canonical target field name. The zero value means
// "unmappable".
type SchemaKey string

const (
	KeyLocationNumber      SchemaKey = "locationNumber"
	KeyProperty            SchemaKey = "property"
	KeyStreetAddress       SchemaKey = "streetAddress"
	KeySuburb              SchemaKey = "suburb"
	KeyState               SchemaKey = "state"
	KeyPostalZipCode       SchemaKey = "postalZipCode"
	KeyCrestaZone          SchemaKey = "crestaZone"
	KeyCountry             SchemaKey = "country"
	KeyOccupancy           SchemaKey = "occupancy"
	KeyPDValue             SchemaKey = "pdValue"
	KeyPDDeductibles       SchemaKey = "pdDeductibles"
	KeyBIValue             SchemaKey = "biValue"
	KeyTotalInsurableValue SchemaKey = "totalInsurableValue"
	KeyLatitude            SchemaKey = "latitude"
	KeyLongitude           SchemaKey = "longitude"
	KeyConstructionClass   SchemaKey = "constructionClass"
	KeyRoofType            SchemaKey = "roofType"
	KeyNumberOfStories     SchemaKey = "numberOfStories"
	KeyYearBuilt           SchemaKey = "yearBuilt"
	KeyFluvialFlood        SchemaKey = "fluvialFlood"
	KeyOriginalStormSurge  SchemaKey = "originalStormSurge"
	KeyOriginalPFRiskLevel SchemaKey = "originalPfRiskLevel"
	KeyWindstorm           SchemaKey = "windstorm"
	KeyHailstorm           SchemaKey = "hailstorm"
	KeyWildfire            SchemaKey = "wildfire"
	KeySeverity            SchemaKey = "severity"
)

// SchemaField pairs a canonical key with its display label.
type SchemaField struct {
	Key   SchemaKey `json:"key"`
	Label string    `json:"label"`
}

// SchemaFields is the standardized SOV layout, in output column order.
// It is shared by all runs and must not be modified.
var SchemaFields = []SchemaField{
	{KeyLocationNumber, "Location Number"},
	{KeyProperty, "Property"},
	{KeyStreetAddress, "Street Address"},
	{KeySuburb, "Suburb"},
	{KeyState, "State"},
	{KeyPostalZipCode, "Postal / ZIP Code"},
	{KeyCrestaZone, "Cresta Zone"},
	{KeyCountry, "Country"},
	{KeyOccupancy, "Occupancy"},
	{KeyPDValue, "PD Value"},
	{KeyPDDeductibles, "PD Deductibles"},
	{KeyBIValue, "BI Value"},
	{KeyTotalInsurableValue, "Total Insurable Value"},
	{KeyLatitude, "Latitude"},
	{KeyLongitude, "Longitude"},
	{KeyConstructionClass, "Construction Class"},
	{KeyRoofType, "Roof Type"},
	{KeyNumberOfStories, "Number of Stories"},
	{KeyYearBuilt, "Year Built"},
	{KeyFluvialFlood, "Fluvial Flood"},
	{KeyOriginalStormSurge, "Original Storm Surge"},
	{KeyOriginalPFRiskLevel, "Original PF Risk Level"},
	{KeyWindstorm, "Windstorm"},
	{KeyHailstorm, "Hailstorm"},
	{KeyWildfire, "Wildfire"},
	{KeySeverity, "Severity"},
}

// CriticalFields are reported workbook-wide when no column maps to them.
var CriticalFields = []SchemaKey{
	KeyLocationNumber,
	KeyStreetAddress,
	KeyCountry,
	KeyOccupancy,
}

// SchemaKeys returns the canonical keys in output order.
func SchemaKeys() []SchemaKey {
	keys := make([]SchemaKey, len(SchemaFields))
	for i, f := range SchemaFields {
		keys[i] = f.Key
	}
	return keys
}

// IsSchemaKey reports whether s is one of the canonical keys.
func IsSchemaKey(s string) bool {
	for _, f := range SchemaFields {
		if string(f.Key) == s {
			return true
		}
	}
	return false
}

// IsCritical reports whether k is a critical field.
func IsCritical(k SchemaKey) bool {
	for _, c := range CriticalFields {
		if c == k {
			return true
		}
	}
	return false
}
