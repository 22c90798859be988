package rules

import (
	"fmt"
)

// Family groups the validation functions of one value type, e.g. "string".
// A family always has a canonical function answering "does the value have
// this type at all"; every other function refines it.
type Family struct {
	typ       string
	canonical string
	funcs     map[string]*Func
	aliases   map[string]string
	order     []string
}

// NewFamily creates an empty family. canonical names the type-check function
// and must be registered before the family is used.
func NewFamily(typ, canonical string) *Family {
	return &Family{
		typ:       typ,
		canonical: canonical,
		funcs:     make(map[string]*Func),
		aliases:   make(map[string]string),
	}
}

// Register adds functions to the family. Reusing a function name or alias
// inside the family is an error.
func (f *Family) Register(fns ...*Func) error {
	for _, fn := range fns {
		if fn == nil || fn.Name == "" {
			return fmt.Errorf("%w: %s: function without a name", ErrInvalidFunction, f.typ)
		}
		if f.taken(fn.Name) {
			return fmt.Errorf("%w: %s::%s", ErrDuplicateFunction, f.typ, fn.Name)
		}
		for _, alias := range fn.Aliases {
			if alias != fn.Name && f.taken(alias) {
				return fmt.Errorf("%w: alias %q in %s", ErrDuplicateFunction, alias, f.typ)
			}
		}

		f.funcs[fn.Name] = fn
		f.order = append(f.order, fn.Name)
		for _, alias := range fn.Aliases {
			if alias != fn.Name {
				f.aliases[alias] = fn.Name
			}
		}
	}
	return nil
}

// MustRegister is Register for family constructors; it panics on conflicts.
func (f *Family) MustRegister(fns ...*Func) *Family {
	if err := f.Register(fns...); err != nil {
		panic(err)
	}
	return f
}

func (f *Family) taken(name string) bool {
	_, fn := f.funcs[name]
	_, alias := f.aliases[name]
	return fn || alias
}

// Type returns the family type tag.
func (f *Family) Type() string { return f.typ }

// Canonical returns the type-check function.
func (f *Family) Canonical() *Func { return f.funcs[f.canonical] }

// Func resolves a function by name or alias.
func (f *Family) Func(name string) (*Func, bool) {
	if fn, ok := f.funcs[name]; ok {
		return fn, true
	}
	if canonical, ok := f.aliases[name]; ok {
		return f.funcs[canonical], true
	}
	return nil, false
}

// Funcs returns the functions in registration order.
func (f *Family) Funcs() []*Func {
	out := make([]*Func, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, f.funcs[name])
	}
	return out
}

// Validate runs the named function. An unknown name is a registry/schema
// mismatch and returns ErrUnknownFunction.
func (f *Family) Validate(name string, in Input) (Outcome, error) {
	fn, ok := f.Func(name)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s::%s", ErrUnknownFunction, f.typ, name)
	}
	return fn.Validate(in)
}
