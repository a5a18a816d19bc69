// Package fielderr carries per-field validation failures as a single error
// value. A payload is validated field by field and every failure is collected
// before the caller decides to abort, so the client sees all problems at once
// instead of the first one.
package fielderr

import (
	"fmt"
	"sort"
	"strings"
)

// Errors maps a field name to its validation message. Uniqueness conflicts
// are reported here too, keyed by the offending field.
type Errors map[string]string

// New returns an empty, ready-to-fill error map.
func New() Errors {
	return make(Errors)
}

// Add records a failure for the field. The first message per field wins so
// format errors are not overwritten by later uniqueness checks.
func (e Errors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// Has reports whether the field already failed.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Merge copies failures from other, keeping existing entries.
func (e Errors) Merge(other map[string]string) {
	for field, message := range other {
		e.Add(field, message)
	}
}

// Err returns the map as an error, or nil when no field failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsErrors unwraps err into an Errors map when it is one.
func AsErrors(err error) (Errors, bool) {
	fe, ok := err.(Errors)
	return fe, ok
}
