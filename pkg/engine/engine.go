package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/rulekit/pkg/errformat"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/predicate"
	"github.com/dmitrymomot/rulekit/pkg/rules"
	"github.com/dmitrymomot/rulekit/pkg/sanitizer"
	"github.com/dmitrymomot/rulekit/pkg/schema"
)

const (
	msgInvalid          = "@{name} is invalid"
	msgNotObject        = "@{name} must be an object"
	msgNotArray         = "@{name} must be an array"
	msgNotArrayOfObject = "@{name} must be an array of objects"
	msgInvalidItems     = "@{name} contains invalid items"
)

// Engine evaluates parsed schemas against value bags. It holds no per-call
// state and is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for rule failures and swallowed processor errors.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: logger.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate checks every field of s against values. Fields are independent:
// cross-field rules read the raw values snapshot, never processed values.
// Validation failures are reported in the Results; the error is reserved for
// broken schemas and failed external lookups.
func (e *Engine) Validate(ctx context.Context, s *schema.Schema, values map[string]any) (Results, error) {
	fields := Context(s, values)
	results := make(Results, s.Len())
	for _, f := range s.Fields() {
		resp, err := e.field(ctx, f, values[f.Name], fields)
		if err != nil {
			return nil, err
		}
		results[f.Name] = resp
	}
	return results, nil
}

// ValidateField checks a single field, for example on a form change event.
// values is the full value bag used for cross-field rules.
func (e *Engine) ValidateField(ctx context.Context, f *schema.Field, value any, values map[string]any) (*Response, error) {
	fields := Context(nil, values)
	if _, ok := fields[f.Name]; !ok {
		fields[f.Name] = rules.FieldValue{Name: f.Label, Value: value}
	}
	return e.field(ctx, f, value, fields)
}

// Context builds the field snapshot for values. Names are labelled with the
// schema label when the field is declared, otherwise label-cased.
func Context(s *schema.Schema, values map[string]any) rules.Fields {
	fields := make(rules.Fields, len(values))
	for name, v := range values {
		label := sanitizer.Label(name)
		if f, ok := s.Field(name); ok {
			label = f.Label
		}
		fields[name] = rules.FieldValue{Name: label, Value: v}
	}
	return fields
}

func (e *Engine) field(ctx context.Context, f *schema.Field, value any, fields rules.Fields) (*Response, error) {
	var (
		requirements []*schema.Rule
		optional     bool
		def          *schema.Rule
	)
	for _, r := range f.Rules {
		switch {
		case r.IsPreProcessor():
			value = e.process(ctx, f, r, value)
		case r.IsRequirement():
			requirements = append(requirements, r)
		case r.Is("optional"):
			optional = true
		case r.Is("default"):
			def = r
		}
	}

	empty := predicate.IsEmpty(value)
	if empty && def != nil {
		value = def.Param
		empty = predicate.IsEmpty(value)
	}

	if empty && (len(requirements) == 0 || optional) {
		return &Response{Valid: true, ProcessedValue: value}, nil
	}

	if empty {
		// Conditional presence rules pass for empty values when their
		// condition does not hold; nothing else runs on an empty value.
		for _, r := range requirements {
			resp, err := e.rule(ctx, f, r, value, fields)
			if err != nil || !resp.Valid {
				return resp, err
			}
		}
		return &Response{Valid: true, ProcessedValue: value}, nil
	}

	for _, r := range f.Rules {
		if r.IsPreProcessor() || r.IsPostProcessor() || r.Is("optional") || r.Is("default") {
			continue
		}

		var (
			resp *Response
			err  error
		)
		switch {
		case r.Custom != nil:
			resp, err = e.custom(ctx, f, r, value, fields)
		case r.Schema != nil && r.Type == schema.TypeArrayOfSchema:
			resp, err = e.arrayOfSchema(ctx, f, r, value, fields)
		case r.Schema != nil:
			resp, err = e.nested(ctx, f, r, value, fields)
		default:
			resp, err = e.rule(ctx, f, r, value, fields)
		}
		if err != nil {
			return nil, err
		}
		if !resp.Valid {
			return resp, nil
		}
		if resp.ProcessedValue != nil {
			value = resp.ProcessedValue
		}
	}

	for _, r := range f.Rules {
		if r.IsPostProcessor() {
			value = e.process(ctx, f, r, value)
		}
	}
	return &Response{Valid: true, ProcessedValue: value}, nil
}

func (e *Engine) rule(ctx context.Context, f *schema.Field, r *schema.Rule, value any, fields rules.Fields) (*Response, error) {
	if r.Entry == nil || !r.Entry.Known() {
		return nil, fmt.Errorf("%w: field %q rule %q", ErrUnresolvedRule, f.Name, r.Name)
	}

	out, err := r.Entry.Validate(rules.Input{
		Ctx:    ctx,
		Field:  f.Name,
		Value:  value,
		Param:  r.Param,
		Fields: fields,
	})
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.Name, err)
	}
	if out.Valid {
		return &Response{Valid: true}, nil
	}

	e.logger.DebugContext(ctx, "rule failed", logger.Field(f.Name), logger.Rule(r.Key))
	return e.fail(f, r, out.Message, value, fields), nil
}

func (e *Engine) custom(ctx context.Context, f *schema.Field, r *schema.Rule, value any, fields rules.Fields) (*Response, error) {
	var ok bool
	switch {
	case r.Custom.Pattern != nil:
		ok = r.Custom.Pattern.MatchString(predicate.ToString(value))
	case r.Custom.Callback != nil:
		var err error
		ok, err = r.Custom.Callback(rules.Input{Ctx: ctx, Field: f.Name, Value: value, Fields: fields})
		if err != nil {
			return nil, fmt.Errorf("field %q: custom: %w", f.Name, err)
		}
	default:
		return nil, fmt.Errorf("%w: field %q custom rule has no check", ErrUnresolvedRule, f.Name)
	}
	if ok {
		return &Response{Valid: true}, nil
	}
	return e.fail(f, r, msgInvalid, value, fields), nil
}

func (e *Engine) nested(ctx context.Context, f *schema.Field, r *schema.Rule, value any, fields rules.Fields) (*Response, error) {
	obj := predicate.ToMap(value)
	if obj == nil {
		return e.fail(f, r, msgNotObject, value, fields), nil
	}

	results, err := e.Validate(ctx, r.Schema, obj)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.Name, err)
	}
	if !results.Valid() {
		resp := e.fail(f, r, msgInvalid, value, fields)
		resp.Children = results
		return resp, nil
	}
	return &Response{Valid: true, ProcessedValue: merge(obj, results)}, nil
}

func (e *Engine) arrayOfSchema(ctx context.Context, f *schema.Field, r *schema.Rule, value any, fields rules.Fields) (*Response, error) {
	if !predicate.IsArray(value) {
		return e.fail(f, r, msgNotArray, value, fields), nil
	}
	items := predicate.ToSlice(value)
	objects := make([]map[string]any, len(items))
	for i, item := range items {
		if objects[i] = predicate.ToMap(item); objects[i] == nil {
			return e.fail(f, r, msgNotArrayOfObject, value, fields), nil
		}
	}

	children := make(map[string]*Response, len(objects))
	processed := make([]any, len(objects))
	valid := true
	for i, obj := range objects {
		results, err := e.Validate(ctx, r.Schema, obj)
		if err != nil {
			return nil, fmt.Errorf("field %q[%d]: %w", f.Name, i, err)
		}
		child := &Response{Valid: results.Valid(), Children: results}
		if child.Valid {
			processed[i] = merge(obj, results)
			child.ProcessedValue = processed[i]
		} else {
			valid = false
		}
		children[strconv.Itoa(i)] = child
	}

	if !valid {
		resp := e.fail(f, r, msgInvalidItems, value, fields)
		resp.Children = children
		return resp, nil
	}
	return &Response{Valid: true, ProcessedValue: processed}, nil
}

// fail formats the failure message of r: the field override if any, else the
// rule's own template.
func (e *Engine) fail(f *schema.Field, r *schema.Rule, template string, value any, fields rules.Fields) *Response {
	if msg, ok := f.Message(r); ok {
		template = msg
	}
	return &Response{
		Valid:    false,
		Rule:     r.Type,
		Function: r.Function,
		Error:    errformat.Format(template, messageData(f, r, value, fields)),
	}
}

func (e *Engine) process(ctx context.Context, f *schema.Field, r *schema.Rule, value any) any {
	out, err := r.Entry.Process(value, r.Param)
	if err != nil {
		e.logger.WarnContext(ctx, "processor failed, keeping value",
			logger.Field(f.Name),
			logger.Rule(r.Key),
			logger.Error(err),
		)
		return value
	}
	return out
}

// messageData is what templates see: @{name}, @{field}, @{value}, @{param},
// @{target} (the referenced field of match-like rules) and @{fields}.
func messageData(f *schema.Field, r *schema.Rule, value any, fields rules.Fields) map[string]any {
	data := map[string]any{
		"name":   f.Label,
		"field":  f.Name,
		"value":  value,
		"param":  r.Param,
		"fields": fields,
	}

	var target string
	switch p := r.Param.(type) {
	case params.FieldRef:
		target = string(p)
	case params.FieldEquals:
		target = p.Field
	}
	if target != "" {
		fv, ok := fields.Lookup(target)
		if !ok {
			fv = rules.FieldValue{Name: sanitizer.Label(target)}
		}
		data["target"] = fv
	}
	return data
}

// merge overlays the processed values of valid sub-fields on the raw object.
func merge(obj map[string]any, results Results) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	for name, resp := range results {
		if resp.ProcessedValue != nil || obj[name] != nil {
			out[name] = resp.ProcessedValue
		}
	}
	return out
}
