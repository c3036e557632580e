package models

// MappedRecord holds one projected row keyed by canonical field. Unmapped
// and blank cells are absent.
type MappedRecord map[SchemaKey]interface{}
