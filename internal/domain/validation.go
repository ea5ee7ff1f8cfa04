package domain

import (
	"sort"
	"strings"
)

// Violations maps a field path to the reason it failed validation
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Merge copies every violation from other into v
func (v Violations) Merge(other Violations) {
	for field, reason := range other {
		v[field] = reason
	}
}

// Fields returns the offending field paths in sorted order
func (v Violations) Fields() []string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, field := range v.Fields() {
		parts = append(parts, field+": "+v[field])
	}
	return strings.Join(parts, ", ")
}

// Required records a violation if value is blank
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// RangeInt records a violation if val is outside [minVal, maxVal]
func RangeInt(field string, val, minVal, maxVal int, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}
