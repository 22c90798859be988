package processor

import (
	"fmt"

	"github.com/dmitrymomot/rulekit/pkg/params"
)

// Transform converts a value. param is the coerced rule parameter, nil when
// the rule was written without one.
type Transform func(value, param any) (any, error)

// Func is a named chain of transforms applied in order, each consuming the
// previous output.
type Func struct {
	Name      string
	ParamType params.ParamType
	ArgTypes  []params.ArgType
	Aliases   []string
	Steps     []Transform
}

// Apply runs the chain. A failing or panicking step never fails the caller:
// the original value is returned together with an ErrTransformFailed error
// describing what was swallowed.
func (fn *Func) Apply(value, param any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = value
			err = fmt.Errorf("%w: %s: panic: %v", ErrTransformFailed, fn.Name, r)
		}
	}()

	current := value
	for _, step := range fn.Steps {
		next, stepErr := step(current, param)
		if stepErr != nil {
			return value, fmt.Errorf("%w: %s: %w", ErrTransformFailed, fn.Name, stepErr)
		}
		current = next
	}
	return current, nil
}

// Processor groups the transforms of one kind, e.g. "case".
type Processor struct {
	typ     string
	funcs   map[string]*Func
	aliases map[string]string
	order   []string
}

// New creates an empty processor of the given type.
func New(typ string) *Processor {
	return &Processor{
		typ:     typ,
		funcs:   make(map[string]*Func),
		aliases: make(map[string]string),
	}
}

// Register adds functions. Names and aliases must be unique in the processor.
func (p *Processor) Register(fns ...*Func) error {
	for _, fn := range fns {
		if fn == nil || fn.Name == "" {
			return fmt.Errorf("%w: %s: function without a name", ErrInvalidFunction, p.typ)
		}
		if p.taken(fn.Name) {
			return fmt.Errorf("%w: %s::%s", ErrDuplicateFunction, p.typ, fn.Name)
		}
		for _, alias := range fn.Aliases {
			if alias != fn.Name && p.taken(alias) {
				return fmt.Errorf("%w: alias %q in %s", ErrDuplicateFunction, alias, p.typ)
			}
		}
		p.funcs[fn.Name] = fn
		p.order = append(p.order, fn.Name)
		for _, alias := range fn.Aliases {
			if alias != fn.Name {
				p.aliases[alias] = fn.Name
			}
		}
	}
	return nil
}

// MustRegister is Register for processor constructors; it panics on conflicts.
func (p *Processor) MustRegister(fns ...*Func) *Processor {
	if err := p.Register(fns...); err != nil {
		panic(err)
	}
	return p
}

func (p *Processor) taken(name string) bool {
	_, fn := p.funcs[name]
	_, alias := p.aliases[name]
	return fn || alias
}

// Type returns the processor type tag.
func (p *Processor) Type() string { return p.typ }

// Func resolves a function by name or alias.
func (p *Processor) Func(name string) (*Func, bool) {
	if fn, ok := p.funcs[name]; ok {
		return fn, true
	}
	if canonical, ok := p.aliases[name]; ok {
		return p.funcs[canonical], true
	}
	return nil, false
}

// Funcs returns the functions in registration order.
func (p *Processor) Funcs() []*Func {
	out := make([]*Func, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.funcs[name])
	}
	return out
}

// Process runs the named function. Only an unknown name is reported as a
// hard error; transform failures come back as ErrTransformFailed with the
// original value.
func (p *Processor) Process(name string, value, param any) (any, error) {
	fn, ok := p.Func(name)
	if !ok {
		return value, fmt.Errorf("%w: %s::%s", ErrUnknownFunction, p.typ, name)
	}
	return fn.Apply(value, param)
}
