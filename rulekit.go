package rulekit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/rulekit/pkg/engine"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/processor"
	"github.com/dmitrymomot/rulekit/pkg/registry"
	"github.com/dmitrymomot/rulekit/pkg/rules"
	"github.com/dmitrymomot/rulekit/pkg/schema"
)

// Validator wires a registry, a schema parser and an engine together.
// It is immutable after New and safe for concurrent use.
type Validator struct {
	registry *registry.Registry
	parser   *schema.Parser
	engine   *engine.Engine
}

type options struct {
	checker    rules.Checker
	logger     *slog.Logger
	families   []*rules.Family
	processors []*processor.Processor
}

// Option configures New.
type Option func(*options)

// WithChecker enables the db::exists and db::unique rules.
func WithChecker(c rules.Checker) Option {
	return func(o *options) { o.checker = c }
}

// WithLogger sets the logger shared by the registry builder and the engine.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRules registers additional rule families next to the built-in ones.
func WithRules(families ...*rules.Family) Option {
	return func(o *options) { o.families = append(o.families, families...) }
}

// WithProcessors registers additional processors next to the built-in ones.
func WithProcessors(processors ...*processor.Processor) Option {
	return func(o *options) { o.processors = append(o.processors, processors...) }
}

// New builds the registry and fails on any duplicate rule or processor name.
func New(opts ...Option) (*Validator, error) {
	o := &options{logger: logger.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	reg, err := registry.NewBuilder(registry.WithLogger(o.logger)).
		Rules(registry.DefaultRules(o.checker)...).
		Rules(o.families...).
		Processors(registry.DefaultProcessors()...).
		Processors(o.processors...).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}

	return &Validator{
		registry: reg,
		parser:   schema.NewParser(reg),
		engine:   engine.New(engine.WithLogger(o.logger)),
	}, nil
}

// MustNew is New that panics on error.
func MustNew(opts ...Option) *Validator {
	v, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Registry returns the name table the validator resolves rules against.
func (v *Validator) Registry() *registry.Registry { return v.registry }

// Parse parses a raw schema definition.
func (v *Validator) Parse(raw any) (*schema.Schema, error) {
	return v.parser.Parse(raw)
}

// MustParse is Parse that panics on error, for schemas declared in code.
func (v *Validator) MustParse(raw any) *schema.Schema {
	return v.parser.MustParse(raw)
}

// Validate checks values against a parsed schema.
func (v *Validator) Validate(ctx context.Context, s *schema.Schema, values map[string]any) (engine.Results, error) {
	return v.engine.Validate(ctx, s, values)
}

// ValidateRaw parses raw and validates values against it. Parse the schema
// once with Parse when validating repeatedly.
func (v *Validator) ValidateRaw(ctx context.Context, raw any, values map[string]any) (engine.Results, error) {
	s, err := v.parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	return v.engine.Validate(ctx, s, values)
}

// ValidateField checks one field of s with value; values is the full bag
// used by cross-field rules.
func (v *Validator) ValidateField(ctx context.Context, s *schema.Schema, name string, value any, values map[string]any) (*engine.Response, error) {
	f, ok := s.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return v.engine.ValidateField(ctx, f, value, values)
}

// Check validates values and returns a ValidationError when any field fails,
// or the processed values otherwise.
func (v *Validator) Check(ctx context.Context, s *schema.Schema, values map[string]any) (map[string]any, error) {
	results, err := v.engine.Validate(ctx, s, values)
	if err != nil {
		return nil, err
	}
	if !results.Valid() {
		return nil, FromResults(results)
	}
	return results.Values(), nil
}
