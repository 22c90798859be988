package schema

import (
	"regexp"

	"github.com/dmitrymomot/rulekit/pkg/registry"
	"github.com/dmitrymomot/rulekit/pkg/rules"
)

// Rule types that are not backed by a registry entry.
const (
	TypeCustom        = "custom"
	TypeSchema        = "schema"
	TypeArrayOfSchema = "arrayOfSchema"
)

// Schema is a parsed, immutable execution plan. It is safe to share between
// concurrent validations.
type Schema struct {
	fields []*Field
	index  map[string]*Field
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []*Field {
	if s == nil {
		return nil
	}
	return s.fields
}

// Field returns the field with the given name.
func (s *Schema) Field(name string) (*Field, bool) {
	if s == nil {
		return nil, false
	}
	f, ok := s.index[name]
	return f, ok
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, 0, s.Len())
	for _, f := range s.Fields() {
		names = append(names, f.Name)
	}
	return names
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Field is one field of a schema with its ordered rules.
type Field struct {
	Name  string
	Label string
	Rules []*Rule
	// Messages overrides rule messages by rule name, function name or key.
	Messages map[string]string
}

// Message returns the override registered for a rule, if any.
func (f *Field) Message(r *Rule) (string, bool) {
	if r.Message != "" {
		return r.Message, true
	}
	for _, name := range []string{r.Name, r.Function, r.Key} {
		if msg, ok := f.Messages[name]; ok {
			return msg, true
		}
	}
	return "", false
}

// Rule is a resolved rule, processor, custom check or nested schema.
type Rule struct {
	// Name is the rule as written in the schema.
	Name     string
	Key      string
	Type     string
	Function string
	Param    any
	Message  string

	Entry  *registry.Entry
	Custom *Custom
	Schema *Schema
}

// IsRule reports whether the rule validates through the registry.
func (r *Rule) IsRule() bool {
	return r.Entry != nil && r.Entry.Kind == registry.KindRule
}

// IsPreProcessor reports whether the rule transforms the value before validation.
func (r *Rule) IsPreProcessor() bool {
	return r.Entry != nil && r.Entry.Kind == registry.KindPreProcessor
}

// IsPostProcessor reports whether the rule transforms the value after validation.
func (r *Rule) IsPostProcessor() bool {
	return r.Entry != nil && r.Entry.Kind == registry.KindPostProcessor
}

// IsRequirement reports whether the rule is a presence rule (require, requireIf...).
func (r *Rule) IsRequirement() bool {
	return r.IsRule() && r.Entry.Requirement
}

// Is reports whether the rule is the given field-family function, e.g. "optional".
func (r *Rule) Is(function string) bool {
	return r.IsRule() && r.Type == "field" && r.Function == function
}

// Custom is an inline check declared under the "custom" key.
// Exactly one of Pattern and Callback is set.
type Custom struct {
	Pattern  *regexp.Regexp
	Callback rules.Predicate
}
