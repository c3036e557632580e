package models

import "encoding/json"

// ColumnMapping maps detected header text to a canonical key. An empty
// SchemaKey marks the header as unmappable.
type ColumnMapping map[string]SchemaKey

// Covers reports whether any header maps to k.
func (m ColumnMapping) Covers(k SchemaKey) bool {
	for _, v := range m {
		if v != "" && v == k {
			return true
		}
	}
	return false
}

// MappedCount returns the number of headers with a non-null target.
func (m ColumnMapping) MappedCount() int {
	n := 0
	for _, v := range m {
		if v != "" {
			n++
		}
	}
	return n
}

// MarshalJSON encodes unmappable headers as null.
func (m ColumnMapping) MarshalJSON() ([]byte, error) {
	out := make(map[string]*string, len(m))
	for header, key := range m {
		if key == "" {
			out[header] = nil
			continue
		}
		s := string(key)
		out[header] = &s
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts null or string targets.
func (m *ColumnMapping) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(ColumnMapping, len(raw))
	for header, key := range raw {
		if key == nil {
			out[header] = ""
			continue
		}
		out[header] = SchemaKey(*key)
	}
	*m = out
	return nil
}
