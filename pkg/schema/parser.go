package schema

import (
	"cmp"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/registry"
	"github.com/dmitrymomot/rulekit/pkg/rules"
	"github.com/dmitrymomot/rulekit/pkg/sanitizer"
)

// Reserved keys of the object form.
const (
	keyMessages      = "messages"
	keyLabel         = "label"
	keyCast          = "cast"
	keyDefault       = "default"
	keyCustom        = "custom"
	keySchema        = TypeSchema
	keyArrayOfSchema = TypeArrayOfSchema
)

const (
	defaultType = "string"
	fieldType   = "field"
	lookupType  = "db"
)

// Parser turns raw schema definitions into Schemas resolved against a registry.
type Parser struct {
	reg *registry.Registry
}

// NewParser creates a parser bound to reg.
func NewParser(reg *registry.Registry) *Parser {
	return &Parser{reg: reg}
}

// Parse builds a Schema from a raw definition: a map or *Object of field
// name to a DSL string, a list of tokens or an object-form definition.
// Unknown rule names and malformed parameters fail with a *FieldError.
func (p *Parser) Parse(raw any) (*Schema, error) {
	var (
		keys []string
		get  func(string) (any, bool)
	)

	switch t := raw.(type) {
	case *Schema:
		return t, nil
	case *Object:
		keys, get = t.Keys(), t.Get
	case map[string]any:
		keys = slices.Sorted(maps.Keys(t))
		get = func(k string) (any, bool) { v, ok := t[k]; return v, ok }
	case map[string]string:
		keys = slices.Sorted(maps.Keys(t))
		get = func(k string) (any, bool) { v, ok := t[k]; return v, ok }
	default:
		return nil, fmt.Errorf("%w: schema must be an object, got %T", ErrInvalidDefinition, raw)
	}

	s := &Schema{
		fields: make([]*Field, 0, len(keys)),
		index:  make(map[string]*Field, len(keys)),
	}
	for _, name := range keys {
		def, _ := get(name)
		f, err := p.parseField(name, def)
		if err != nil {
			return nil, err
		}
		s.fields = append(s.fields, f)
		s.index[name] = f
	}
	return s, nil
}

// MustParse is Parse that panics on error.
func (p *Parser) MustParse(raw any) *Schema {
	s, err := p.Parse(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// fieldParse carries the resolution context of one field definition.
type fieldParse struct {
	*Parser
	field   *Field
	current string
}

func (p *Parser) parseField(name string, def any) (*Field, error) {
	fp := &fieldParse{
		Parser:  p,
		field:   &Field{Name: name, Label: sanitizer.Label(name), Messages: map[string]string{}},
		current: defaultType,
	}

	var err error
	switch d := def.(type) {
	case nil:
	case string:
		err = fp.tokens(params.SplitRules(d))
	case []string:
		err = fp.tokens(d)
	case []any:
		var toks []string
		if toks, err = fp.stringList(d); err == nil {
			err = fp.tokens(toks)
		}
	case *Object:
		err = fp.object(d.Keys(), d.Get)
	case map[string]any:
		err = fp.object(p.order(d), func(k string) (any, bool) { v, ok := d[k]; return v, ok })
	default:
		err = fp.fail("", fmt.Errorf("%w: unsupported definition %T", ErrInvalidDefinition, def))
	}
	if err != nil {
		return nil, err
	}
	return fp.field, nil
}

func (fp *fieldParse) fail(rule string, err error) error {
	return &FieldError{Field: fp.field.Name, Rule: rule, Err: err}
}

func (fp *fieldParse) stringList(list []any) ([]string, error) {
	out := make([]string, 0, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fp.fail("", fmt.Errorf("%w: rule list item %v is not a string", ErrInvalidDefinition, v))
		}
		out = append(out, s)
	}
	return out, nil
}

func (fp *fieldParse) tokens(toks []string) error {
	for _, raw := range toks {
		tok := params.Extract(raw)
		e, ok := fp.resolve(tok.Name)
		if !ok {
			return fp.fail(tok.Name, ErrUnknownRule)
		}
		if err := fp.add(tok.Name, e, tok.Param, tok.HasParam, ""); err != nil {
			return err
		}
	}
	return nil
}

// resolve looks a rule name up the way a schema author reads it: qualified
// names exactly, unqualified names first within the current type and then by
// key or alias. Resolving a rule outside the field and db families makes its
// type the current one.
func (fp *fieldParse) resolve(name string) (*registry.Entry, bool) {
	var (
		e  *registry.Entry
		ok bool
	)
	if strings.Contains(name, "::") {
		e, ok = fp.reg.Lookup(name)
	} else if e, ok = fp.reg.Lookup(fp.current + "::" + name); !ok {
		e, ok = fp.reg.Lookup(name)
	}
	if ok && e.Kind == registry.KindRule && e.Type != fieldType && e.Type != lookupType {
		fp.current = e.Type
	}
	return e, ok
}

func (fp *fieldParse) add(name string, e *registry.Entry, raw string, hasParam bool, message string) error {
	param, err := parseParam(e, raw, hasParam)
	if err != nil {
		return fp.fail(name, err)
	}
	fp.field.Rules = append(fp.field.Rules, &Rule{
		Name:     name,
		Key:      e.Key,
		Type:     e.Type,
		Function: e.Function,
		Param:    param,
		Message:  message,
		Entry:    e,
	})
	return nil
}

func parseParam(e *registry.Entry, raw string, hasParam bool) (any, error) {
	if e.ParamType == params.ParamNone || e.ParamType == "" {
		return true, nil
	}
	if !hasParam {
		if e.Kind.IsProcessor() {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s expects a %s parameter", ErrInvalidDefinition, e.Key, e.ParamType)
	}
	v, err := params.Parse(raw, e.ParamType, e.ArgTypes...)
	if err != nil {
		return nil, err
	}
	return e.PrepareParam(v)
}

func (fp *fieldParse) object(keys []string, get func(string) (any, bool)) error {
	for _, key := range keys {
		v, _ := get(key)

		var err error
		switch key {
		case keyMessages:
			err = fp.messages(v)
		case keyLabel:
			label, ok := v.(string)
			if !ok {
				return fp.fail(key, fmt.Errorf("%w: label must be a string", ErrInvalidDefinition))
			}
			fp.field.Label = label
		case keyCast:
			err = fp.cast(v)
		case keyDefault:
			e, ok := fp.reg.Lookup(fieldType + "::" + keyDefault)
			if !ok {
				return fp.fail(key, ErrUnknownRule)
			}
			fp.field.Rules = append(fp.field.Rules, &Rule{
				Name: key, Key: e.Key, Type: e.Type, Function: e.Function, Param: v, Entry: e,
			})
		case keyCustom:
			err = fp.custom(v)
		case keySchema, keyArrayOfSchema:
			err = fp.nested(key, v)
		default:
			err = fp.keyed(key, v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (fp *fieldParse) messages(v any) error {
	switch m := v.(type) {
	case *Object:
		for _, k := range m.Keys() {
			msg, _ := m.Get(k)
			fp.field.Messages[k] = fmt.Sprint(msg)
		}
	case map[string]any:
		for k, msg := range m {
			fp.field.Messages[k] = fmt.Sprint(msg)
		}
	case map[string]string:
		maps.Copy(fp.field.Messages, m)
	default:
		return fp.fail(keyMessages, fmt.Errorf("%w: messages must be an object", ErrInvalidDefinition))
	}
	return nil
}

// cast accepts "trim|case::lower" or a list of processor names.
func (fp *fieldParse) cast(v any) error {
	var toks []string
	switch c := v.(type) {
	case string:
		toks = params.SplitRules(c)
	case []string:
		toks = c
	case []any:
		var err error
		if toks, err = fp.stringList(c); err != nil {
			return err
		}
	default:
		return fp.fail(keyCast, fmt.Errorf("%w: cast must be a string or a list", ErrInvalidDefinition))
	}

	for _, raw := range toks {
		tok := params.Extract(raw)
		e, ok := fp.reg.Lookup(tok.Name)
		if !ok {
			return fp.fail(tok.Name, ErrUnknownRule)
		}
		if !e.Kind.IsProcessor() {
			return fp.fail(tok.Name, fmt.Errorf("%w: %s is not a processor", ErrInvalidDefinition, e.Key))
		}
		if err := fp.add(tok.Name, e, tok.Param, tok.HasParam, ""); err != nil {
			return err
		}
	}
	return nil
}

// keyed handles `rule: true | param | {rule|value, message}`.
func (fp *fieldParse) keyed(key string, v any) error {
	var message string
	if opts, ok := asObject(v); ok {
		if msg, ok := opts.Get("message"); ok {
			message = fmt.Sprint(msg)
		}
		param, ok := opts.Get("rule")
		if !ok {
			param, ok = opts.Get("value")
		}
		if !ok {
			param = true
		}
		v = param
	}

	if b, ok := v.(bool); ok && !b {
		return nil
	}

	e, ok := fp.resolve(key)
	if !ok {
		return fp.fail(key, ErrUnknownRule)
	}
	raw, hasParam := rawParam(v)
	return fp.add(key, e, raw, hasParam, message)
}

func (fp *fieldParse) custom(v any) error {
	c := &Custom{}
	var message string

	switch d := v.(type) {
	case string:
		re, err := regexp.Compile(d)
		if err != nil {
			return fp.fail(keyCustom, fmt.Errorf("%w: %w", ErrInvalidPattern, err))
		}
		c.Pattern = re
	default:
		opts, ok := asObject(v)
		if !ok {
			if pred, ok := callback(v); ok {
				c.Callback = pred
				break
			}
			return fp.fail(keyCustom, fmt.Errorf("%w: unsupported definition %T", ErrInvalidCustom, v))
		}
		if msg, ok := opts.Get("message"); ok {
			message = fmt.Sprint(msg)
		}
		if pattern, ok := opts.Get("pattern"); ok {
			re, err := regexp.Compile(fmt.Sprint(pattern))
			if err != nil {
				return fp.fail(keyCustom, fmt.Errorf("%w: %w", ErrInvalidPattern, err))
			}
			c.Pattern = re
		} else if fn, ok := opts.Get("callback"); ok {
			pred, ok := callback(fn)
			if !ok {
				return fp.fail(keyCustom, fmt.Errorf("%w: callback has type %T", ErrInvalidCustom, fn))
			}
			c.Callback = pred
		} else {
			return fp.fail(keyCustom, fmt.Errorf("%w: pattern or callback required", ErrInvalidCustom))
		}
	}

	fp.field.Rules = append(fp.field.Rules, &Rule{
		Name:     keyCustom,
		Key:      keyCustom,
		Type:     TypeCustom,
		Function: keyCustom,
		Message:  message,
		Custom:   c,
	})
	return nil
}

func (fp *fieldParse) nested(key string, v any) error {
	sub, err := fp.Parse(v)
	if err != nil {
		return fp.fail(key, err)
	}
	fp.field.Rules = append(fp.field.Rules, &Rule{
		Name:     key,
		Key:      key,
		Type:     key,
		Function: key,
		Param:    sub,
		Schema:   sub,
	})
	return nil
}

// order sorts a plain map definition: presence markers, type checks, other
// rules alphabetically, then cast, custom and nested schemas.
func (p *Parser) order(def map[string]any) []string {
	keys := slices.Sorted(maps.Keys(def))
	slices.SortStableFunc(keys, func(a, b string) int {
		return cmp.Compare(p.rank(a), p.rank(b))
	})
	return keys
}

func (p *Parser) rank(key string) int {
	switch key {
	case keyMessages, keyLabel:
		return 0
	case keyDefault:
		return 1
	case keyCast:
		return 4
	case keyCustom:
		return 5
	case keySchema, keyArrayOfSchema:
		return 6
	}
	if e, ok := p.reg.Lookup(key); ok && e.Kind == registry.KindRule {
		switch {
		case e.Requirement, e.Type == fieldType && e.Function == "optional":
			return 1
		case e.Canonical && e.Type != fieldType && e.Type != lookupType:
			return 2
		}
	}
	return 3
}

func asObject(v any) (*Object, bool) {
	switch t := v.(type) {
	case *Object:
		return t, true
	case map[string]any:
		obj := NewObject()
		for _, k := range slices.Sorted(maps.Keys(t)) {
			obj.Set(k, t[k])
		}
		return obj, true
	}
	return nil, false
}

// rawParam renders an object-form value back to DSL parameter text.
func rawParam(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case bool:
		if t {
			return "", false
		}
		return "false", true
	case string:
		return t, true
	case []any:
		parts := make([]string, len(t))
		for i, x := range t {
			parts[i], _ = rawParam(x)
		}
		return strings.Join(parts, ","), true
	case []string:
		return strings.Join(t, ","), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	}
	return fmt.Sprint(v), true
}

func callback(v any) (rules.Predicate, bool) {
	switch fn := v.(type) {
	case rules.Predicate:
		return fn, fn != nil
	case func(rules.Input) (bool, error):
		return fn, fn != nil
	case func(any) bool:
		if fn == nil {
			return nil, false
		}
		return func(in rules.Input) (bool, error) { return fn(in.Value), nil }, true
	case func(any, rules.Fields) bool:
		if fn == nil {
			return nil, false
		}
		return func(in rules.Input) (bool, error) { return fn(in.Value, in.Fields), nil }, true
	}
	return nil, false
}
