package model

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of a form definition:
// non-empty title, field names unique within the form, and a non-empty
// options list on fields whose type renders choices.
func (c FormConfig) Validate() error {
	if c.Title == "" {
		return errors.New("title is required")
	}

	names := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if f.Name == "" {
			return fmt.Errorf("field %q has no name", f.Label)
		}
		if names[f.Name] {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		names[f.Name] = true

		if f.HasOptions() && len(f.Options) == 0 {
			return fmt.Errorf("field %q of type %s has no options", f.Name, f.Type)
		}
	}
	return nil
}

// RequiredFieldsMissing returns the names of required fields whose submitted
// value is empty: a blank string, an empty list, or a false/absent checkbox.
// This mirrors the check the form-filling UI performs before submitting;
// the server itself accepts the payload either way.
func RequiredFieldsMissing(c FormConfig, data map[string]any) []string {
	var missing []string
	for _, f := range c.Fields {
		if !f.Required {
			continue
		}
		if !present(data[f.Name]) {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

func present(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	default:
		return true
	}
}
