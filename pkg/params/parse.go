package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse coerces a raw parameter string into the value a rule expects.
// It runs once, when a schema is parsed, so rule evaluation never re-parses
// parameters.
//
//   - ParamNone           -> true (presence flag)
//   - ParamSingle         -> the raw value coerced to the first matching ArgType
//   - ParamRange          -> Bounds
//   - ParamList           -> []any, each element coerced
//   - ParamFileSize       -> FileSize
//   - ParamFieldReference -> FieldRef
//   - ParamFieldEquals    -> FieldEquals
//   - ParamFunction       -> the raw string
//   - ParamSchema         -> the raw string (nested schemas come from object definitions)
func Parse(raw string, pt ParamType, args ...ArgType) (any, error) {
	switch pt {
	case ParamNone, "":
		return true, nil
	case ParamSingle:
		return Coerce(raw, args...)
	case ParamRange:
		parts := splitList(raw)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRange, raw)
		}
		lo, err := Coerce(parts[0], args...)
		if err != nil {
			return nil, err
		}
		hi, err := Coerce(parts[1], args...)
		if err != nil {
			return nil, err
		}
		return Bounds{Min: lo, Max: hi}, nil
	case ParamList:
		parts := splitList(raw)
		out := make([]any, 0, len(parts))
		for _, p := range parts {
			v, err := Coerce(p, args...)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case ParamFileSize:
		return ParseFileSize(raw)
	case ParamFieldReference:
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("%w: empty field reference", ErrInvalidParam)
		}
		return FieldRef(name), nil
	case ParamFieldEquals:
		field, value, ok := strings.Cut(raw, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCondition, raw)
		}
		return FieldEquals{Field: field, Value: unquote(strings.TrimSpace(value))}, nil
	case ParamFunction, ParamSchema:
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownParamType, pt)
	}
}

// Coerce converts a single raw value to the first argument type that accepts
// it. With no argument types the value is inferred as ArgAny.
func Coerce(raw string, args ...ArgType) (any, error) {
	if len(args) == 0 {
		args = []ArgType{ArgAny}
	}
	raw = strings.TrimSpace(raw)

	var errs []error
	for _, at := range args {
		v, err := coerceOne(raw, at)
		if err == nil {
			return v, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

func coerceOne(raw string, at ArgType) (any, error) {
	switch at {
	case ArgString, ArgFieldName:
		return unquote(raw), nil
	case ArgNumber, ArgFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidParam, raw)
		}
		return f, nil
	case ArgInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidParam, raw)
		}
		return n, nil
	case ArgBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrInvalidParam, raw)
		}
		return b, nil
	case ArgDate:
		return ExtractDate(unquote(raw))
	case ArgTime:
		return ExtractTime(unquote(raw))
	case ArgDateTime:
		return ExtractDateTime(unquote(raw))
	case ArgArray:
		parts := splitList(raw)
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = unquote(p)
		}
		return out, nil
	case ArgObject:
		var obj map[string]any
		if err := json.Unmarshal([]byte(raw), &obj); err != nil {
			return nil, fmt.Errorf("%w: %q is not a JSON object", ErrInvalidParam, raw)
		}
		return obj, nil
	case ArgAny:
		return inferAny(raw), nil
	default:
		return nil, fmt.Errorf("%w: cannot coerce %q to %s", ErrInvalidParam, raw, at)
	}
}

func inferAny(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	return unquote(raw)
}

// splitList strips one pair of surrounding parentheses and splits on "," or "|".
func splitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		raw = raw[1 : len(raw)-1]
	}
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '|' })
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
