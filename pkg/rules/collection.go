package rules

import (
	"slices"

	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/predicate"
)

// Array is the family of list rules. Length rules count elements.
func Array() *Family {
	count := []params.ArgType{params.ArgInteger}
	return NewFamily("array", "array").MustRegister(
		&Func{
			Name:    "array",
			Aliases: []string{"array"},
			Steps:   []Step{CheckValue(predicate.IsArray, "@{name} must be an array")},
		},
		&Func{
			Name:      "min",
			ParamType: params.ParamSingle,
			ArgTypes:  count,
			Steps: []Step{Check(func(in Input) bool {
				return predicate.IsArray(in.Value) && numeric(predicate.Len(in.Value), in.Param, gte)
			}, "@{name} must have at least @{param} items")},
		},
		&Func{
			Name:      "max",
			ParamType: params.ParamSingle,
			ArgTypes:  count,
			Steps: []Step{Check(func(in Input) bool {
				return predicate.IsArray(in.Value) && numeric(predicate.Len(in.Value), in.Param, lte)
			}, "@{name} must not have more than @{param} items")},
		},
		&Func{
			Name:      "between",
			ParamType: params.ParamRange,
			ArgTypes:  count,
			Steps: []Step{Check(func(in Input) bool {
				return predicate.IsArray(in.Value) && inLengthRange(predicate.Len(in.Value), in.Param)
			}, "@{name} must have between @{param.min} and @{param.max} items")},
		},
		&Func{
			Name:      "length",
			ParamType: params.ParamSingle,
			ArgTypes:  count,
			Steps: []Step{Check(func(in Input) bool {
				return predicate.IsArray(in.Value) && numeric(predicate.Len(in.Value), in.Param, eq)
			}, "@{name} must have exactly @{param} items")},
		},
		&Func{
			Name:      "contains",
			ParamType: params.ParamSingle,
			ArgTypes:  []params.ArgType{params.ArgAny},
			Steps: []Step{Check(func(in Input) bool {
				return listContains(in.Value, in.Param)
			}, "@{name} must contain @{param}")},
		},
		&Func{
			Name: "unique",
			Steps: []Step{CheckValue(func(v any) bool {
				seen := make(map[string]struct{})
				for _, item := range predicate.ToSlice(v) {
					key := predicate.ToString(item)
					if _, dup := seen[key]; dup {
						return false
					}
					seen[key] = struct{}{}
				}
				return true
			}, "@{name} must not contain duplicate items")},
		},
		&Func{
			Name:      "of",
			Aliases:   []string{"arrayOf"},
			ParamType: params.ParamSingle,
			ArgTypes:  []params.ArgType{params.ArgString},
			Steps: []Step{Check(func(in Input) bool {
				return predicate.IsArrayOf(in.Value, predicate.ToString(in.Param))
			}, "every item of @{name} must be of type @{param}")},
		},
		&Func{
			Name: "notEmpty",
			Steps: []Step{CheckValue(func(v any) bool {
				return predicate.IsArray(v) && predicate.Len(v) > 0
			}, "@{name} must not be empty")},
		},
	)
}

// Object is the family of key/value map rules.
func Object() *Family {
	keys := []params.ArgType{params.ArgString}
	count := []params.ArgType{params.ArgInteger}
	return NewFamily("object", "object").MustRegister(
		&Func{
			Name:    "object",
			Aliases: []string{"object"},
			Steps:   []Step{CheckValue(predicate.IsObject, "@{name} must be an object")},
		},
		&Func{
			Name:      "hasKeys",
			ParamType: params.ParamList,
			ArgTypes:  keys,
			Steps: []Step{Check(func(in Input) bool {
				obj := predicate.ToMap(in.Value)
				if obj == nil {
					return false
				}
				for _, k := range listStrings(in.Param) {
					if _, ok := obj[k]; !ok {
						return false
					}
				}
				return true
			}, "@{name} must contain the keys @{param}")},
		},
		&Func{
			Name:      "onlyKeys",
			ParamType: params.ParamList,
			ArgTypes:  keys,
			Steps: []Step{Check(func(in Input) bool {
				obj := predicate.ToMap(in.Value)
				if obj == nil {
					return false
				}
				allowed := listStrings(in.Param)
				for k := range obj {
					if !slices.Contains(allowed, k) {
						return false
					}
				}
				return true
			}, "@{name} may only contain the keys @{param}")},
		},
		&Func{
			Name:      "minKeys",
			ParamType: params.ParamSingle,
			ArgTypes:  count,
			Steps: []Step{Check(func(in Input) bool {
				return predicate.IsObject(in.Value) && numeric(predicate.Len(in.Value), in.Param, gte)
			}, "@{name} must have at least @{param} keys")},
		},
		&Func{
			Name:      "maxKeys",
			ParamType: params.ParamSingle,
			ArgTypes:  count,
			Steps: []Step{Check(func(in Input) bool {
				return predicate.IsObject(in.Value) && numeric(predicate.Len(in.Value), in.Param, lte)
			}, "@{name} must not have more than @{param} keys")},
		},
	)
}
