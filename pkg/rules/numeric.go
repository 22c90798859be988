package rules

import (
	"strconv"
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/predicate"
)

// Integer is the family of whole-number rules. The canonical check accepts
// integers and strings matching ^[+-]?[0-9]+$.
func Integer() *Family {
	arg := []params.ArgType{params.ArgInteger}
	f := NewFamily("integer", "integer").MustRegister(&Func{
		Name:    "integer",
		Aliases: []string{"integer", "int"},
		Steps:   []Step{CheckValue(predicate.IsInteger, "@{name} must be an integer")},
	})
	f.MustRegister(comparisonFuncs(arg)...)
	return f.MustRegister(
		&Func{
			Name:      "in",
			ParamType: params.ParamList,
			ArgTypes:  arg,
			Steps: []Step{Check(func(in Input) bool {
				return numericIn(in.Value, in.Param)
			}, "@{name} must be one of @{param}")},
		},
		&Func{
			Name:      "notIn",
			ParamType: params.ParamList,
			ArgTypes:  arg,
			Steps: []Step{Check(func(in Input) bool {
				return !numericIn(in.Value, in.Param)
			}, "@{name} must not be one of @{param}")},
		},
		&Func{
			Name: "even",
			Steps: []Step{CheckValue(func(v any) bool {
				n, ok := predicate.ToInt(v)
				return ok && n%2 == 0
			}, "@{name} must be an even number")},
		},
		&Func{
			Name: "odd",
			Steps: []Step{CheckValue(func(v any) bool {
				n, ok := predicate.ToInt(v)
				return ok && n%2 != 0
			}, "@{name} must be an odd number")},
		},
		&Func{
			Name:      "multipleOf",
			ParamType: params.ParamSingle,
			ArgTypes:  arg,
			Steps: []Step{Check(func(in Input) bool {
				n, ok := predicate.ToInt(in.Value)
				d, dok := predicate.ToInt(in.Param)
				return ok && dok && d != 0 && n%d == 0
			}, "@{name} must be a multiple of @{param}")},
		},
		&Func{
			Name:      "digits",
			ParamType: params.ParamSingle,
			ArgTypes:  arg,
			Steps: []Step{Check(func(in Input) bool {
				n, ok := predicate.ToInt(in.Value)
				if !ok {
					return false
				}
				count := len(strings.TrimPrefix(strconv.FormatInt(n, 10), "-"))
				return numeric(count, in.Param, eq)
			}, "@{name} must have exactly @{param} digits")},
		},
	)
}

// Float is the family of real-number rules. "float" requires a literal decimal
// point, "number" accepts any numeric value.
func Float() *Family {
	arg := []params.ArgType{params.ArgFloat}
	f := NewFamily("float", "float").MustRegister(
		&Func{
			Name:    "float",
			Aliases: []string{"float", "decimal"},
			Steps:   []Step{CheckValue(predicate.IsFloat, "@{name} must be a decimal number")},
		},
		&Func{
			Name:    "number",
			Aliases: []string{"number"},
			Steps:   []Step{CheckValue(predicate.IsNumber, "@{name} must be a number")},
		},
	)
	f.MustRegister(comparisonFuncs(arg)...)
	return f.MustRegister(
		&Func{
			Name:      "decimals",
			ParamType: params.ParamSingle,
			ArgTypes:  []params.ArgType{params.ArgInteger},
			Steps: []Step{Check(func(in Input) bool {
				if !predicate.IsNumber(in.Value) {
					return false
				}
				_, frac, _ := strings.Cut(predicate.ToString(in.Value), ".")
				return numeric(len(frac), in.Param, lte)
			}, "@{name} must have at most @{param} decimal places")},
		},
	)
}

// comparisonFuncs are the value comparisons shared by integer and float.
func comparisonFuncs(arg []params.ArgType) []*Func {
	return []*Func{
		{
			Name:      "min",
			ParamType: params.ParamSingle,
			ArgTypes:  arg,
			Steps: []Step{Check(func(in Input) bool {
				return numeric(in.Value, in.Param, gte)
			}, "@{name} must be at least @{param}")},
		},
		{
			Name:      "max",
			ParamType: params.ParamSingle,
			ArgTypes:  arg,
			Steps: []Step{Check(func(in Input) bool {
				return numeric(in.Value, in.Param, lte)
			}, "@{name} must not be greater than @{param}")},
		},
		{
			Name:      "between",
			ParamType: params.ParamRange,
			ArgTypes:  arg,
			Steps: []Step{Check(func(in Input) bool {
				return inNumericRange(in.Value, in.Param)
			}, "@{name} must be between @{param.min} and @{param.max}")},
		},
		{
			Name:      "equals",
			ParamType: params.ParamSingle,
			ArgTypes:  arg,
			Steps: []Step{Check(func(in Input) bool {
				return numeric(in.Value, in.Param, eq)
			}, "@{name} must be equal to @{param}")},
		},
		{
			Name:      "notEquals",
			ParamType: params.ParamSingle,
			ArgTypes:  arg,
			Steps: []Step{Check(func(in Input) bool {
				return numeric(in.Value, in.Param, neq)
			}, "@{name} must not be equal to @{param}")},
		},
		{
			Name: "positive",
			Steps: []Step{CheckValue(func(v any) bool {
				return numeric(v, 0, gt)
			}, "@{name} must be a positive number")},
		},
		{
			Name: "negative",
			Steps: []Step{CheckValue(func(v any) bool {
				return numeric(v, 0, lt)
			}, "@{name} must be a negative number")},
		},
	}
}

func numericIn(v, list any) bool {
	f, ok := predicate.ToFloat(v)
	if !ok {
		return false
	}
	for _, item := range predicate.ToSlice(list) {
		if g, ok := predicate.ToFloat(item); ok && f == g {
			return true
		}
	}
	return false
}
