package registry

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/processor"
	"github.com/dmitrymomot/rulekit/pkg/rules"
	"github.com/dmitrymomot/rulekit/pkg/sanitizer"
)

const preprocessorPrefix = "pre"

// Builder collects rule families and processors and flattens them into a
// Registry. Every processor is registered twice: as a post-processor under
// its own key and as a pre-processor under the "pre" prefixed key.
type Builder struct {
	families   []*rules.Family
	processors []*processor.Processor
	logger     *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used to report the built registry size.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Rules adds rule families.
func (b *Builder) Rules(families ...*rules.Family) *Builder {
	b.families = append(b.families, families...)
	return b
}

// Processors adds processors.
func (b *Builder) Processors(processors ...*processor.Processor) *Builder {
	b.processors = append(b.processors, processors...)
	return b
}

// Build flattens the collected functions. Any key or alias used twice across
// the whole space fails the build with ErrDuplicateName.
func (b *Builder) Build() (*Registry, error) {
	r := &Registry{entries: make(map[string]*Entry)}

	for _, family := range b.families {
		canonical := family.Canonical()
		for _, fn := range family.Funcs() {
			e := &Entry{
				Key:         family.Type() + "::" + fn.Name,
				Type:        family.Type(),
				Function:    fn.Name,
				Kind:        KindRule,
				ParamType:   fn.ParamType,
				ArgTypes:    fn.ArgTypes,
				Aliases:     fn.Aliases,
				Canonical:   fn == canonical,
				Requirement: fn.Requirement,
				rule:        fn,
			}
			if err := r.add(e, fn.Aliases); err != nil {
				return nil, err
			}
		}
	}

	for _, proc := range b.processors {
		for _, fn := range proc.Funcs() {
			post := &Entry{
				Key:       processorKey("", proc.Type(), fn.Name),
				Type:      proc.Type(),
				Function:  fn.Name,
				Kind:      KindPostProcessor,
				ParamType: fn.ParamType,
				ArgTypes:  fn.ArgTypes,
				Aliases:   fn.Aliases,
				transform: fn,
			}
			if err := r.add(post, fn.Aliases); err != nil {
				return nil, err
			}

			preAliases := make([]string, len(fn.Aliases))
			for i, alias := range fn.Aliases {
				preAliases[i] = preprocessorPrefix + sanitizer.Capitalize(alias)
			}
			pre := &Entry{
				Key:       processorKey(preprocessorPrefix, proc.Type(), fn.Name),
				Type:      proc.Type(),
				Function:  fn.Name,
				Kind:      KindPreProcessor,
				ParamType: fn.ParamType,
				ArgTypes:  fn.ArgTypes,
				Aliases:   preAliases,
				transform: fn,
			}
			if err := r.add(pre, preAliases); err != nil {
				return nil, err
			}
		}
	}

	slices.SortFunc(r.ordered, func(a, b *Entry) int {
		return strings.Compare(a.Key, b.Key)
	})

	b.logger.Debug("rule registry built",
		slog.Int("entries", len(r.ordered)),
		slog.Int("keys", len(r.entries)),
	)
	return r, nil
}

// MustBuild is Build that panics on conflicts, for use at program start.
func (b *Builder) MustBuild() *Registry {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) add(e *Entry, aliases []string) error {
	if _, exists := r.entries[e.Key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, e.Key)
	}
	r.entries[e.Key] = e
	for _, alias := range aliases {
		if alias == e.Key {
			continue
		}
		if _, exists := r.entries[alias]; exists {
			return fmt.Errorf("%w: alias %q of %q", ErrDuplicateName, alias, e.Key)
		}
		r.entries[alias] = e
	}
	r.ordered = append(r.ordered, e)
	return nil
}

// processorKey builds "trim", "trim::left", "preTrim" or "preCase::lower".
func processorKey(prefix, typ, fn string) string {
	var b strings.Builder
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteString(sanitizer.Capitalize(typ))
	} else {
		b.WriteString(typ)
	}
	if fn != typ {
		b.WriteString("::")
		b.WriteString(fn)
	}
	return b.String()
}

// DefaultRules returns every built-in rule family. The "db" family is
// included only when a checker is given.
func DefaultRules(checker rules.Checker) []*rules.Family {
	families := []*rules.Family{
		rules.Field(),
		rules.String(),
		rules.Integer(),
		rules.Float(),
		rules.Boolean(),
		rules.Date(),
		rules.Time(),
		rules.DateTime(),
		rules.Array(),
		rules.Object(),
		rules.File(),
	}
	if checker != nil {
		families = append(families, rules.Lookup(checker))
	}
	return families
}

// DefaultProcessors returns the trim, case, cast and math processors.
func DefaultProcessors() []*processor.Processor {
	return []*processor.Processor{
		processor.Trim(),
		processor.Case(),
		processor.Cast(),
		processor.Math(),
	}
}

// NewDefault builds the registry of every built-in family and processor.
func NewDefault(checker rules.Checker, opts ...Option) (*Registry, error) {
	return NewBuilder(opts...).
		Rules(DefaultRules(checker)...).
		Processors(DefaultProcessors()...).
		Build()
}
