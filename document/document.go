package document

import (
	"encoding/json"
	"fmt"

	"github.com/girojogos/duoguard/validation"
)

// decode converts raw document data into a typed view via a JSON round-trip
// and validates it with struct tags. The round-trip is what makes decoding
// strict: a participants entry that is a plain string cannot unmarshal into
// a Participant and fails here instead of silently passing a rule check.
func decode(data map[string]any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("document: encode raw data: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("document: decode: %w", err)
	}
	return validation.Validate(out)
}

// Field reads a single raw field without decoding the whole document.
// Returns the value and whether the field is present.
func Field(data map[string]any, name string) (any, bool) {
	if data == nil {
		return nil, false
	}
	v, ok := data[name]
	return v, ok
}
