package engine

import (
	"maps"
	"slices"
)

// Response is the verdict for one field. Children is set for nested schemas
// and holds one Response per sub-field, or per index for arrays of schemas.
type Response struct {
	Valid          bool                 `json:"valid"`
	Rule           string               `json:"rule,omitempty"`
	Function       string               `json:"function,omitempty"`
	Error          string               `json:"error,omitempty"`
	ProcessedValue any                  `json:"processedValue,omitempty"`
	Children       map[string]*Response `json:"children,omitempty"`
}

// Results maps field names to their responses.
type Results map[string]*Response

// Valid reports whether every field passed.
func (r Results) Valid() bool {
	for _, resp := range r {
		if !resp.Valid {
			return false
		}
	}
	return true
}

// Failed returns the names of the failed fields, sorted.
func (r Results) Failed() []string {
	var out []string
	for name, resp := range r {
		if !resp.Valid {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// Errors returns the error message of every failed field.
func (r Results) Errors() map[string]string {
	out := make(map[string]string)
	for name, resp := range r {
		if !resp.Valid {
			out[name] = resp.Error
		}
	}
	return out
}

// Values returns the processed value of every valid field.
func (r Results) Values() map[string]any {
	out := make(map[string]any, len(r))
	for name, resp := range r {
		if resp.Valid {
			out[name] = resp.ProcessedValue
		}
	}
	return out
}

// Names returns all field names, sorted.
func (r Results) Names() []string {
	return slices.Sorted(maps.Keys(r))
}
