package rulekit

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/engine"
)

// ErrUnknownField is returned by ValidateField for names the schema lacks.
var ErrUnknownField = errors.New("unknown field")

// ValidationError holds the failure messages per field. Nested failures are
// keyed by their dotted path, e.g. "users.0.name".
type ValidationError url.Values

// FromResults collects the failed fields of results, descending into children.
func FromResults(results engine.Results) ValidationError {
	e := NewValidationError()
	collect(e, "", results)
	return e
}

func collect(e ValidationError, prefix string, children map[string]*engine.Response) {
	for name, resp := range children {
		if resp.Valid {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if len(resp.Children) > 0 {
			collect(e, path, resp.Children)
		}
		if resp.Error != "" {
			e.Add(path, resp.Error)
		}
	}
}

func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e))
	for _, field := range slices.Sorted(maps.Keys(e)) {
		if msgs := e[field]; len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msgs[0]))
		}
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Add appends a message for a field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first message for a field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// Map returns the first message of every field, the shape HTTP error bodies use.
func (e ValidationError) Map() map[string]string {
	out := make(map[string]string, len(e))
	for field, msgs := range e {
		if len(msgs) > 0 {
			out[field] = msgs[0]
		}
	}
	return out
}
