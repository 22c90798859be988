package processor

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/predicate"
	"github.com/dmitrymomot/rulekit/pkg/sanitizer"
)

// text lifts string helpers into a transform. Non-string values pass through.
func text(fns ...func(string) string) Transform {
	pipeline := sanitizer.Compose(fns...)
	return func(value, _ any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return value, nil
		}
		return pipeline(s), nil
	}
}

func stringFunc(name string, aliases []string, fns ...func(string) string) *Func {
	return &Func{Name: name, Aliases: aliases, ParamType: params.ParamNone, Steps: []Transform{text(fns...)}}
}

// Trim strips whitespace. "trim::all" also collapses inner runs of whitespace.
func Trim() *Processor {
	return New("trim").MustRegister(
		stringFunc("trim", nil, sanitizer.Trim),
		stringFunc("left", []string{"ltrim"}, sanitizer.TrimLeft),
		stringFunc("right", []string{"rtrim"}, sanitizer.TrimRight),
		stringFunc("all", []string{"squish"}, sanitizer.RemoveExtraWhitespace),
	)
}

// Case converts letter case and naming conventions.
func Case() *Processor {
	return New("case").MustRegister(
		stringFunc("lower", nil, sanitizer.ToLower),
		stringFunc("upper", nil, sanitizer.ToUpper),
		stringFunc("camel", nil, sanitizer.ToCamelCase),
		stringFunc("pascal", nil, sanitizer.ToPascalCase),
		stringFunc("snake", nil, sanitizer.ToSnakeCase),
		stringFunc("kebab", nil, sanitizer.ToKebabCase),
		stringFunc("title", nil, sanitizer.ToTitle),
		stringFunc("sentence", nil, sanitizer.ToSentence),
		stringFunc("capitalize", nil, sanitizer.Capitalize),
	)
}

// Cast projects values onto another type. It is best effort: when a value
// cannot be converted the original is kept.
func Cast() *Processor {
	return New("cast").MustRegister(
		castFunc("string", func(v any) (any, error) {
			return predicate.ToString(v), nil
		}),
		castFunc("number", toFloat),
		castFunc("float", toFloat),
		castFunc("integer", func(v any) (any, error) {
			f, err := toFloat(v)
			if err != nil {
				return nil, err
			}
			return int64(math.Trunc(f.(float64))), nil
		}),
		castFunc("boolean", func(v any) (any, error) {
			if b, ok := predicate.ToBool(v); ok {
				return b, nil
			}
			switch strings.ToLower(strings.TrimSpace(predicate.ToString(v))) {
			case "yes", "on":
				return true, nil
			case "no", "off", "":
				return false, nil
			}
			return nil, fmt.Errorf("%w: %v to boolean", ErrNotConvertible, v)
		}),
		castFunc("array", toArray),
		castFunc("object", func(v any) (any, error) {
			if m := predicate.ToMap(v); m != nil {
				return m, nil
			}
			var obj map[string]any
			if err := json.Unmarshal([]byte(predicate.ToString(v)), &obj); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrNotConvertible, err)
			}
			return obj, nil
		}),
		castFunc("json", func(v any) (any, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			return string(b), nil
		}),
	)
}

func castFunc(name string, fn func(any) (any, error)) *Func {
	return &Func{
		Name:      name,
		ParamType: params.ParamNone,
		Steps: []Transform{func(value, _ any) (any, error) {
			return fn(value)
		}},
	}
}

func toFloat(v any) (any, error) {
	f, ok := predicate.ToFloat(v)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotNumeric, v)
	}
	return f, nil
}

func toArray(v any) (any, error) {
	if predicate.IsArray(v) {
		return predicate.ToSlice(v), nil
	}
	s, ok := v.(string)
	if !ok {
		return []any{v}, nil
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		var arr []any
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			return arr, nil
		}
	}
	if s == "" {
		return []any{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out, nil
}

// Math applies numeric rounding and clamping. Results are float64.
func Math() *Processor {
	return New("math").MustRegister(
		&Func{
			Name:      "round",
			ParamType: params.ParamSingle,
			ArgTypes:  []params.ArgType{params.ArgInteger},
			Steps: []Transform{numericStep(func(f float64, param any) float64 {
				places, _ := predicate.ToInt(param)
				return sanitizer.RoundToDecimalPlaces(f, int(places))
			})},
		},
		&Func{
			Name:  "ceil",
			Steps: []Transform{numericStep(func(f float64, _ any) float64 { return sanitizer.RoundUp(f) })},
		},
		&Func{
			Name:  "floor",
			Steps: []Transform{numericStep(func(f float64, _ any) float64 { return sanitizer.RoundDown(f) })},
		},
		&Func{
			Name:  "abs",
			Steps: []Transform{numericStep(func(f float64, _ any) float64 { return sanitizer.Abs(f) })},
		},
		&Func{
			Name:      "clamp",
			ParamType: params.ParamRange,
			ArgTypes:  []params.ArgType{params.ArgFloat},
			Steps: []Transform{func(value, param any) (any, error) {
				b, ok := param.(params.Bounds)
				if !ok {
					return nil, fmt.Errorf("%w: clamp needs a range", ErrNotConvertible)
				}
				lo, lok := predicate.ToFloat(b.Min)
				hi, hok := predicate.ToFloat(b.Max)
				f, fok := predicate.ToFloat(value)
				if !lok || !hok || !fok {
					return nil, fmt.Errorf("%w: %v", ErrNotNumeric, value)
				}
				return sanitizer.Clamp(f, lo, hi), nil
			}},
		},
	)
}

func numericStep(fn func(f float64, param any) float64) Transform {
	return func(value, param any) (any, error) {
		f, ok := predicate.ToFloat(value)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrNotNumeric, value)
		}
		return fn(f, param), nil
	}
}
