package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/predicate"
)

// numeric compares v against p as float64. It is false when either side is
// not numeric.
func numeric(v, p any, cmp func(a, b float64) bool) bool {
	a, ok := predicate.ToFloat(v)
	if !ok {
		return false
	}
	b, ok := predicate.ToFloat(p)
	if !ok {
		return false
	}
	return cmp(a, b)
}

func bounds(p any) (params.Bounds, bool) {
	switch b := p.(type) {
	case params.Bounds:
		return b, true
	case *params.Bounds:
		if b != nil {
			return *b, true
		}
	}
	return params.Bounds{}, false
}

func inNumericRange(v, p any) bool {
	b, ok := bounds(p)
	if !ok {
		return false
	}
	return numeric(v, b.Min, gte) && numeric(v, b.Max, lte)
}

func inLengthRange(n int, p any) bool {
	b, ok := bounds(p)
	if !ok || n < 0 {
		return false
	}
	return numeric(n, b.Min, gte) && numeric(n, b.Max, lte)
}

func gte(a, b float64) bool { return a >= b }
func lte(a, b float64) bool { return a <= b }
func gt(a, b float64) bool  { return a > b }
func lt(a, b float64) bool  { return a < b }
func eq(a, b float64) bool  { return a == b }
func neq(a, b float64) bool { return a != b }

// sameText compares the stringified forms, so 5 and "5" are equal.
func sameText(a, b any) bool {
	return predicate.ToString(a) == predicate.ToString(b)
}

func listContains(list any, v any) bool {
	for _, item := range predicate.ToSlice(list) {
		if sameText(item, v) {
			return true
		}
	}
	return false
}

func listStrings(list any) []string {
	items := predicate.ToSlice(list)
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, predicate.ToString(item))
	}
	return out
}

func fieldNames(p any) []string {
	if ref, ok := p.(params.FieldRef); ok {
		return []string{string(ref)}
	}
	if s, ok := p.(string); ok {
		return []string{strings.TrimSpace(s)}
	}
	return listStrings(p)
}

func compilePattern(param any) (any, error) {
	if re, ok := param.(*regexp.Regexp); ok {
		return re, nil
	}
	re, err := regexp.Compile(predicate.ToString(param))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return re, nil
}

func matchPattern(in Input) bool {
	re, ok := in.Param.(*regexp.Regexp)
	if !ok {
		compiled, err := compilePattern(in.Param)
		if err != nil {
			return false
		}
		re = compiled.(*regexp.Regexp)
	}
	return re.MatchString(predicate.ToString(in.Value))
}
