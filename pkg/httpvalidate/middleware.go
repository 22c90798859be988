package httpvalidate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/rulekit/pkg/engine"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/schema"
)

// Validator is satisfied by *rulekit.Validator and *engine.Engine.
type Validator interface {
	Validate(ctx context.Context, s *schema.Schema, values map[string]any) (engine.Results, error)
}

type valuesKey struct{}

// WithValues returns a copy of ctx carrying processed values.
func WithValues(ctx context.Context, values map[string]any) context.Context {
	return context.WithValue(ctx, valuesKey{}, values)
}

// FromContext returns the processed values stored by Middleware.
func FromContext(ctx context.Context) (map[string]any, bool) {
	values, ok := ctx.Value(valuesKey{}).(map[string]any)
	return values, ok
}

type config struct {
	maxMemory int64
	logger    *slog.Logger
}

// Option configures Middleware.
type Option func(*config)

// WithMaxMemory sets the in-memory limit for multipart forms.
func WithMaxMemory(n int64) Option {
	return func(c *config) { c.maxMemory = n }
}

// WithLogger sets the logger for rejected requests and validation errors.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Middleware validates every request against s. Invalid requests get a 400
// ErrorBody; valid ones reach next with the processed values in the context.
func Middleware(v Validator, s *schema.Schema, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{maxMemory: DefaultMaxMemory, logger: logger.Nop()}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			values, results, err := Validate(r, v, s, cfg.maxMemory)
			switch {
			case err != nil:
				cfg.logger.ErrorContext(r.Context(), "request validation failed", logger.Error(err))
				_ = WriteError(w, err)
			case !results.Valid():
				cfg.logger.DebugContext(r.Context(), "request rejected", logger.Count(len(results.Failed())))
				_ = WriteValidationError(w, results)
			default:
				next.ServeHTTP(w, r.WithContext(WithValues(r.Context(), values)))
			}
		})
	}
}

// Validate decodes the request and validates it. values holds the processed
// value of every field; fields of the request that the schema does not
// declare are dropped.
func Validate(r *http.Request, v Validator, s *schema.Schema, maxMemory int64) (map[string]any, engine.Results, error) {
	raw, err := Values(r, maxMemory)
	if err != nil {
		return nil, nil, err
	}
	results, err := v.Validate(r.Context(), s, raw)
	if err != nil {
		return nil, nil, err
	}
	return results.Values(), results, nil
}
