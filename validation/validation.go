package validation

import (
	"slices"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Fields returns the violated field names in a stable order.
func (v Violations) Fields() []string {
	out := make([]string, 0, len(v))
	for k := range v {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// RequiredPtr flags a field that was absent from the payload.
func RequiredPtr[T any](field string, value *T, v Violations) {
	if value == nil {
		v[field] = "required"
	}
}

func MinInt(field string, val, minVal int, v Violations) {
	if val < minVal {
		v[field] = "too_small"
	}
}

func OneOf(field, value string, allowed []string, v Violations) {
	if !slices.Contains(allowed, value) {
		v[field] = "invalid_choice"
	}
}
