package errformat

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/sanitizer"
)

// Modifier transforms the rendered value of a placeholder candidate.
type Modifier func(string) string

var modifiers = map[string]Modifier{
	"trim":       strings.TrimSpace,
	"upper":      strings.ToUpper,
	"lower":      strings.ToLower,
	"capitalize": sanitizer.Capitalize,
	"title":      sanitizer.ToTitle,
}

// Format replaces every @{expr} placeholder in template with the value expr
// resolves to in data. Each expr is a "||" separated list of candidates tried
// in order; a candidate is a path or a quoted literal followed by optional
// "|" modifiers:
//
//	@{user.name | capitalize || user.username | upper || "Guest"}
//
// The first candidate that resolves to a non-nil value wins. Slices render
// joined with ", " and nil renders as an empty string. A placeholder that
// cannot be evaluated renders empty; Format never fails.
func Format(template string, data any) string {
	if !strings.Contains(template, "@{") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))

	rest := template
	for {
		start := strings.Index(rest, "@{")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		body := rest[start+2:]
		end := closing(body)
		if end < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:start])
		b.WriteString(evaluate(body[:end], data))
		rest = body[end+1:]
	}
	return b.String()
}

// Render converts a single value to its message form.
func Render(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ", ")
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	case []byte:
		return string(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ""
		}
		return Render(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = Render(rv.Index(i).Interface())
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

func evaluate(expr string, data any) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()

	for _, candidate := range split(expr, "||") {
		parts := split(candidate, "|")
		v, ok := operand(strings.TrimSpace(parts[0]), data)
		if !ok {
			continue
		}
		s := Render(v)
		for _, name := range parts[1:] {
			if mod, ok := modifiers[strings.TrimSpace(name)]; ok {
				s = mod(s)
			}
		}
		return s
	}
	return ""
}

func operand(head string, data any) (any, bool) {
	if head == "" {
		return nil, false
	}
	if lit, ok := unquote(head); ok {
		return lit, true
	}

	keys, ok := segments(head)
	if !ok {
		return nil, false
	}
	v := data
	for _, key := range keys {
		if v, ok = lookup(v, key); !ok {
			return nil, false
		}
	}
	if isNil(v) {
		return nil, false
	}
	return v, true
}

// lookup resolves one path segment against maps, slices, structs and any
// value exposing Map() map[string]any.
func lookup(v any, key string) (any, bool) {
	if isNil(v) {
		return nil, false
	}
	if m, ok := v.(interface{ Map() map[string]any }); ok {
		v = m.Map()
	}

	switch t := v.(type) {
	case map[string]any:
		x, ok := t[key]
		return x, ok
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(t) {
			return nil, false
		}
		return t[i], true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return nil, false
		}
		x := rv.MapIndex(reflect.ValueOf(key).Convert(kt))
		if !x.IsValid() {
			return nil, false
		}
		return x.Interface(), true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	case reflect.Struct:
		f := rv.FieldByNameFunc(func(name string) bool { return strings.EqualFold(name, key) })
		if !f.IsValid() || !f.CanInterface() {
			return nil, false
		}
		return f.Interface(), true
	}
	return nil, false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// segments splits "a.b[0]['c d']" into a, b, 0, c d.
func segments(path string) ([]string, bool) {
	var out []string
	var cur strings.Builder

	flush := func() bool {
		s := strings.TrimSpace(cur.String())
		cur.Reset()
		if s == "" {
			return false
		}
		out = append(out, s)
		return true
	}

	for i := 0; i < len(path); i++ {
		switch c := path[i]; c {
		case '.':
			// "a[0].b": the bracket already flushed the segment.
			if cur.Len() == 0 && i > 0 && path[i-1] == ']' {
				continue
			}
			if !flush() {
				return nil, false
			}
		case '[':
			if cur.Len() > 0 && !flush() {
				return nil, false
			}
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, false
			}
			key := strings.TrimSpace(path[i+1 : i+end])
			if lit, ok := unquote(key); ok {
				key = lit
			}
			if key == "" {
				return nil, false
			}
			out = append(out, key)
			i += end
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 && !flush() {
		return nil, false
	}
	return out, len(out) > 0
}

func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	q := s[0]
	if (q != '"' && q != '\'') || s[len(s)-1] != q {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// closing returns the index of the "}" ending a placeholder body, skipping
// braces inside quoted literals.
func closing(s string) int {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '}':
			return i
		}
	}
	return -1
}

// split cuts s on sep outside quoted literals.
func split(s, sep string) []string {
	var out []string
	var quote byte
	last := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case strings.HasPrefix(s[i:], sep):
			out = append(out, s[last:i])
			i += len(sep) - 1
			last = i + 1
		}
	}
	return append(out, s[last:])
}
