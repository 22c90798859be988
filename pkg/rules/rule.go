package rules

import (
	"context"
	"fmt"
	"regexp"

	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/predicate"
)

// FieldValue is one entry of the field context: the label-cased field name
// and the raw value as it appeared in the value bag.
type FieldValue struct {
	Name  string
	Value any
}

// Fields is the read-only field context snapshot shared by every rule of a
// single validation pass. Rules must never write to it.
type Fields map[string]FieldValue

// Lookup returns the context entry for a field.
func (f Fields) Lookup(name string) (FieldValue, bool) {
	v, ok := f[name]
	return v, ok
}

// Value returns the raw value of a field, or nil when it is absent.
func (f Fields) Value(name string) any {
	return f[name].Value
}

// Filled reports whether the field is present and not empty.
func (f Fields) Filled(name string) bool {
	v, ok := f[name]
	return ok && !predicate.IsEmpty(v.Value)
}

// Input is everything a validation step can see.
type Input struct {
	Ctx    context.Context
	Field  string
	Value  any
	Param  any
	Fields Fields
}

// Predicate reports whether the input passes a step. A non-nil error means the
// step could not be evaluated (for example an external lookup failed) and is
// never a user-input failure.
type Predicate func(in Input) (bool, error)

// Step is one ordered check of a rule function: either a predicate or a
// pattern matched against the stringified value, plus the message template
// reported when it fails.
type Step struct {
	Check   Predicate
	Pattern *regexp.Regexp
	Message string
}

func (s Step) run(in Input) (bool, error) {
	if s.Pattern != nil && !s.Pattern.MatchString(predicate.ToString(in.Value)) {
		return false, nil
	}
	if s.Check == nil {
		return true, nil
	}
	return s.Check(in)
}

// Check builds a step from a pure predicate.
func Check(fn func(in Input) bool, message string) Step {
	return Step{
		Check:   func(in Input) (bool, error) { return fn(in), nil },
		Message: message,
	}
}

// CheckValue builds a step from a predicate over the value alone.
func CheckValue(fn func(v any) bool, message string) Step {
	return Check(func(in Input) bool { return fn(in.Value) }, message)
}

// CheckErr builds a step from a predicate that may fail to evaluate.
func CheckErr(fn Predicate, message string) Step {
	return Step{Check: fn, Message: message}
}

// Pattern builds a step that matches the stringified value against re.
func Pattern(re *regexp.Regexp, message string) Step {
	return Step{Pattern: re, Message: message}
}

// Func is a named validation function of a rule family.
type Func struct {
	Name      string
	ParamType params.ParamType
	ArgTypes  []params.ArgType
	// Aliases are alternate invocable names. They share one global namespace
	// with every other rule and processor name.
	Aliases []string
	// Requirement marks presence rules (require, requireIf, atLeastOne...).
	// The engine evaluates them even when the value is empty.
	Requirement bool
	// Prepare converts the coerced parameter once, at schema parse time.
	Prepare func(param any) (any, error)
	Steps   []Step
}

// Validate runs the steps in order and stops at the first failure.
func (fn *Func) Validate(in Input) (Outcome, error) {
	for _, step := range fn.Steps {
		ok, err := step.run(in)
		if err != nil {
			return Outcome{}, fmt.Errorf("%s: %w", fn.Name, err)
		}
		if !ok {
			return Outcome{Function: fn.Name, Message: step.Message}, nil
		}
	}
	return Outcome{Valid: true, Function: fn.Name}, nil
}

// Outcome is the verdict of a single rule function. Message is the unformatted
// template of the failing step.
type Outcome struct {
	Valid    bool
	Function string
	Message  string
}
