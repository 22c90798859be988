package predicate

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strings"
)

var (
	integerRegex   = regexp.MustCompile(`^[+-]?[0-9]+$`)
	floatRegex     = regexp.MustCompile(`^[+-]?[0-9]*\.[0-9]+$`)
	numberRegex    = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
	latitudeRegex  = regexp.MustCompile(`^[-+]?([1-8]?\d(\.\d+)?|90(\.0+)?)$`)
	longitudeRegex = regexp.MustCompile(`^[-+]?(180(\.0+)?|((1[0-7]\d)|([1-9]?\d))(\.\d+)?)$`)
)

// IsArray reports whether v is a slice or an array. Byte slices count as arrays.
func IsArray(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// IsObject reports whether v is a map keyed by strings.
// Structs are not objects: the engine only ever sees decoded JSON, YAML or form data.
func IsObject(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

// IsEmpty reports whether v carries no usable value: nil, a whitespace-only
// string, an empty slice, array or map, or a nil pointer.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// IsNumber reports whether v is a Go number or a string holding a decimal number.
func IsNumber(v any) bool {
	switch val := v.(type) {
	case string:
		return numberRegex.MatchString(strings.TrimSpace(val))
	case json.Number:
		return numberRegex.MatchString(val.String())
	case bool, nil:
		return false
	}
	return isNumericKind(v)
}

// IsInteger reports whether the stringified value matches ^[+-]?[0-9]+$.
func IsInteger(v any) bool {
	if !IsNumber(v) && !isString(v) {
		return false
	}
	return integerRegex.MatchString(ToString(v))
}

// IsFloat requires a literal decimal point in the stringified value.
func IsFloat(v any) bool {
	if !IsNumber(v) && !isString(v) {
		return false
	}
	return floatRegex.MatchString(ToString(v))
}

// IsBoolean accepts Go bools and the strings "true", "false", "1" and "0"
// (case-insensitive), as well as the numbers 1 and 0.
func IsBoolean(v any) bool {
	_, ok := ToBool(v)
	return ok
}

// IsJSON reports whether v is a string holding a JSON object or array.
func IsJSON(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "[") {
		return false
	}
	return json.Valid([]byte(s))
}

// IsLatitude reports whether v is a decimal degree in [-90, 90].
func IsLatitude(v any) bool {
	if !IsNumber(v) {
		return false
	}
	return latitudeRegex.MatchString(ToString(v))
}

// IsLongitude reports whether v is a decimal degree in [-180, 180].
func IsLongitude(v any) bool {
	if !IsNumber(v) {
		return false
	}
	return longitudeRegex.MatchString(ToString(v))
}

// IsArrayOf reports whether v is an array whose every element satisfies the
// named primitive check. Unknown kinds never match. An empty array matches.
func IsArrayOf(v any, kind string) bool {
	check, ok := kindChecks[kind]
	if !ok || !IsArray(v) {
		return false
	}
	for _, item := range ToSlice(v) {
		if !check(item) {
			return false
		}
	}
	return true
}

var kindChecks = map[string]func(any) bool{
	"string":  isString,
	"number":  IsNumber,
	"integer": IsInteger,
	"float":   IsFloat,
	"boolean": IsBoolean,
	"array":   IsArray,
	"object":  IsObject,
	"json":    IsJSON,
	"any":     func(any) bool { return true },
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isNumericKind(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
