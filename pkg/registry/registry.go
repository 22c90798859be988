package registry

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/processor"
	"github.com/dmitrymomot/rulekit/pkg/rules"
)

// Kind tags what an entry can do.
type Kind int

const (
	KindUnknown Kind = iota
	KindRule
	KindPreProcessor
	KindPostProcessor
)

func (k Kind) String() string {
	switch k {
	case KindRule:
		return "rule"
	case KindPreProcessor:
		return "preprocessor"
	case KindPostProcessor:
		return "postprocessor"
	default:
		return "unknown"
	}
}

// IsProcessor reports whether the entry transforms values.
func (k Kind) IsProcessor() bool {
	return k == KindPreProcessor || k == KindPostProcessor
}

// Entry is the resolved metadata of one rule or processor function. The same
// Entry is reachable through its fully-qualified key and every alias.
type Entry struct {
	Key       string
	Type      string
	Function  string
	Kind      Kind
	ParamType params.ParamType
	ArgTypes  []params.ArgType
	Aliases   []string
	// Canonical marks the type check of a rule family ("integer::integer").
	Canonical bool
	// Requirement marks presence rules evaluated even for empty values.
	Requirement bool

	rule      *rules.Func
	transform *processor.Func
}

// Known reports whether the entry resolves to a registered function.
func (e *Entry) Known() bool { return e.Kind != KindUnknown }

// PrepareParam applies the function's parse-time parameter conversion, if any.
func (e *Entry) PrepareParam(param any) (any, error) {
	if e.rule == nil || e.rule.Prepare == nil {
		return param, nil
	}
	return e.rule.Prepare(param)
}

// Validate runs a rule entry.
func (e *Entry) Validate(in rules.Input) (rules.Outcome, error) {
	if e.Kind != KindRule || e.rule == nil {
		return rules.Outcome{}, fmt.Errorf("%w: %s is not a rule", ErrUnknownName, e.Key)
	}
	return e.rule.Validate(in)
}

// Process runs a processor entry. Transform failures return the original
// value and an error wrapping processor.ErrTransformFailed.
func (e *Entry) Process(value, param any) (any, error) {
	if !e.Kind.IsProcessor() || e.transform == nil {
		return value, fmt.Errorf("%w: %s is not a processor", ErrUnknownName, e.Key)
	}
	return e.transform.Apply(value, param)
}

// Registry is the flat, immutable name table shared by the schema parser and
// the engine. It is safe for concurrent use.
type Registry struct {
	entries map[string]*Entry
	ordered []*Entry
}

// Lookup returns the entry registered under a key or alias.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Entries returns every distinct entry sorted by key.
func (r *Registry) Entries() []*Entry {
	return slices.Clone(r.ordered)
}

// Keys returns every key and alias, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of keys, aliases included.
func (r *Registry) Len() int { return len(r.entries) }
