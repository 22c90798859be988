package rules

import (
	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/predicate"
)

// Field is the family of presence and cross-field rules. Its canonical
// function is "require".
func Field() *Family {
	return NewFamily("field", "require").MustRegister(
		&Func{
			Name:        "require",
			Aliases:     []string{"require", "required"},
			ParamType:   params.ParamNone,
			Requirement: true,
			Steps:       []Step{CheckValue(filled, "@{name} is required")},
		},
		&Func{
			Name:      "optional",
			Aliases:   []string{"optional", "nullable"},
			ParamType: params.ParamNone,
		},
		&Func{
			Name:      "default",
			Aliases:   []string{"default"},
			ParamType: params.ParamSingle,
			ArgTypes:  []params.ArgType{params.ArgAny},
		},
		&Func{
			Name:      "match",
			Aliases:   []string{"match", "same"},
			ParamType: params.ParamFieldReference,
			ArgTypes:  []params.ArgType{params.ArgFieldName},
			Steps: []Step{
				Check(targetPresent, "@{name} cannot be compared: @{param} is missing"),
				Check(func(in Input) bool {
					return sameText(in.Value, targetValue(in))
				}, "@{name} must match @{target.name}"),
			},
		},
		&Func{
			Name:      "different",
			Aliases:   []string{"different"},
			ParamType: params.ParamFieldReference,
			ArgTypes:  []params.ArgType{params.ArgFieldName},
			Steps: []Step{
				Check(func(in Input) bool {
					return !sameText(in.Value, targetValue(in))
				}, "@{name} must be different from @{target.name}"),
			},
		},
		&Func{
			Name:        "requireIf",
			Aliases:     []string{"requireIf", "requiredIf"},
			ParamType:   params.ParamFieldEquals,
			Requirement: true,
			Steps: []Step{
				Check(func(in Input) bool {
					cond, ok := in.Param.(params.FieldEquals)
					if !ok || !sameText(in.Fields.Value(cond.Field), cond.Value) {
						return true
					}
					return filled(in.Value)
				}, "@{name} is required when @{param.field} is @{param.value}"),
			},
		},
		&Func{
			Name:        "requireUnless",
			Aliases:     []string{"requireUnless", "requiredUnless"},
			ParamType:   params.ParamFieldEquals,
			Requirement: true,
			Steps: []Step{
				Check(func(in Input) bool {
					cond, ok := in.Param.(params.FieldEquals)
					if !ok || sameText(in.Fields.Value(cond.Field), cond.Value) {
						return true
					}
					return filled(in.Value)
				}, "@{name} is required unless @{param.field} is @{param.value}"),
			},
		},
		&Func{
			Name:        "requireWith",
			Aliases:     []string{"requireWith", "requiredWith"},
			ParamType:   params.ParamList,
			ArgTypes:    []params.ArgType{params.ArgFieldName},
			Requirement: true,
			Steps: []Step{
				Check(func(in Input) bool {
					for _, name := range fieldNames(in.Param) {
						if in.Fields.Filled(name) {
							return filled(in.Value)
						}
					}
					return true
				}, "@{name} is required when @{param} is present"),
			},
		},
		&Func{
			Name:        "requireWithout",
			Aliases:     []string{"requireWithout", "requiredWithout"},
			ParamType:   params.ParamList,
			ArgTypes:    []params.ArgType{params.ArgFieldName},
			Requirement: true,
			Steps: []Step{
				Check(func(in Input) bool {
					for _, name := range fieldNames(in.Param) {
						if !in.Fields.Filled(name) {
							return filled(in.Value)
						}
					}
					return true
				}, "@{name} is required when @{param} is missing"),
			},
		},
		&Func{
			Name:        "atLeastOne",
			Aliases:     []string{"atLeastOne"},
			ParamType:   params.ParamList,
			ArgTypes:    []params.ArgType{params.ArgFieldName},
			Requirement: true,
			Steps: []Step{
				Check(func(in Input) bool {
					return countFilled(in) > 0
				}, "at least one of @{name}, @{param} is required"),
			},
		},
		&Func{
			Name:        "onlyOne",
			Aliases:     []string{"onlyOne"},
			ParamType:   params.ParamList,
			ArgTypes:    []params.ArgType{params.ArgFieldName},
			Requirement: true,
			Steps: []Step{
				Check(func(in Input) bool {
					return countFilled(in) == 1
				}, "exactly one of @{name}, @{param} must be provided"),
			},
		},
		&Func{
			Name:        "allOrNone",
			Aliases:     []string{"allOrNone"},
			ParamType:   params.ParamList,
			ArgTypes:    []params.ArgType{params.ArgFieldName},
			Requirement: true,
			Steps: []Step{
				Check(func(in Input) bool {
					n := countFilled(in)
					return n == 0 || n == len(fieldNames(in.Param))+1
				}, "@{name} and @{param} must be provided together or not at all"),
			},
		},
	)
}

func filled(v any) bool { return !predicate.IsEmpty(v) }

func targetName(in Input) string {
	switch ref := in.Param.(type) {
	case params.FieldRef:
		return string(ref)
	case string:
		return ref
	}
	return ""
}

func targetPresent(in Input) bool {
	_, ok := in.Fields.Lookup(targetName(in))
	return ok
}

func targetValue(in Input) any {
	return in.Fields.Value(targetName(in))
}

// countFilled counts the validated value and every listed field that carries a value.
func countFilled(in Input) int {
	n := 0
	if filled(in.Value) {
		n++
	}
	for _, name := range fieldNames(in.Param) {
		if in.Fields.Filled(name) {
			n++
		}
	}
	return n
}
