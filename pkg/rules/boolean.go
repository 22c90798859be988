package rules

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/predicate"
)

var (
	acceptedValues = []string{"yes", "on", "1", "true"}
	declinedValues = []string{"no", "off", "0", "false"}
)

// Boolean is the family of truthiness rules.
func Boolean() *Family {
	return NewFamily("boolean", "boolean").MustRegister(
		&Func{
			Name:    "boolean",
			Aliases: []string{"boolean", "bool"},
			Steps:   []Step{CheckValue(predicate.IsBoolean, "@{name} must be true or false")},
		},
		&Func{
			Name: "isTrue",
			Steps: []Step{CheckValue(func(v any) bool {
				b, ok := predicate.ToBool(v)
				return ok && b
			}, "@{name} must be true")},
		},
		&Func{
			Name: "isFalse",
			Steps: []Step{CheckValue(func(v any) bool {
				b, ok := predicate.ToBool(v)
				return ok && !b
			}, "@{name} must be false")},
		},
		&Func{
			Name:    "accepted",
			Aliases: []string{"accepted"},
			Steps:   []Step{CheckValue(oneOfWords(acceptedValues), "@{name} must be accepted")},
		},
		&Func{
			Name:    "declined",
			Aliases: []string{"declined"},
			Steps:   []Step{CheckValue(oneOfWords(declinedValues), "@{name} must be declined")},
		},
	)
}

func oneOfWords(words []string) func(any) bool {
	return func(v any) bool {
		s := strings.ToLower(strings.TrimSpace(predicate.ToString(v)))
		return slices.Contains(words, s)
	}
}
