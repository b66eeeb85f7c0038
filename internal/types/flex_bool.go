package types

import (
	"encoding/json"
	"strings"
)

// FlexBool is a bool that can be unmarshaled from a JSON bool, number or
// string. Any truthy representation ("true", "yes", "1", nonzero number)
// becomes true; everything else becomes false.
type FlexBool bool

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = false
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexBool(b)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = n != 0
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "y", "1":
			*f = true
		default:
			*f = false
		}
		return nil
	}

	// Unknown shape, treat as falsy rather than failing the whole parse
	*f = false
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// Bool converts FlexBool back to bool.
func (f FlexBool) Bool() bool {
	return bool(f)
}
