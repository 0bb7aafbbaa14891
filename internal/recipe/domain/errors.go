package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors translated to HTTP status codes by the delivery layer
var (
	// ErrNotFound indicates a referenced recipe, tag, ingredient or
	// membership record does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation, such as marking the
	// same recipe twice or deleting an ingredient still in use
	ErrConflict = errors.New("already exists")

	// ErrForbidden indicates the acting user is not allowed to modify the
	// target recipe
	ErrForbidden = errors.New("forbidden")
)

// FieldErrors maps payload field names to human-readable failure reasons.
// The composer collects every field-level failure before giving up, so a
// single response can report all of them.
type FieldErrors map[string][]string

// Add records a failure reason against a field
func (e FieldErrors) Add(field, reason string) {
	e[field] = append(e[field], reason)
}

// Error implements the error interface
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, field := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", field, strings.Join(e[field], ", "))
	}
	return b.String()
}
