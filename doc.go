// Package rulekit is a declarative validation engine for loosely typed input
// such as decoded JSON, form posts and configuration documents.
//
// A schema maps field names to rules written in a compact DSL or in an
// object form:
//
//	v := rulekit.MustNew()
//	signup := v.MustParse(map[string]any{
//		"email":    "require|email",
//		"age":      "require|integer|between(18,65)",
//		"password": "require|strongPassword",
//		"confirm":  "require|match(password)",
//		"name": map[string]any{
//			"require":  true,
//			"cast":     "trim|case::title",
//			"messages": map[string]any{"require": "Tell us your @{name | lower}"},
//		},
//	})
//
//	results, err := v.Validate(ctx, signup, values)
//	if err != nil {
//		// broken schema or failed lookup
//	}
//	if !results.Valid() {
//		return rulekit.FromResults(results)
//	}
//
// Rules and processors live in an immutable registry built once by New.
// Schemas are parsed once and may be shared by any number of goroutines.
// Validation failures are returned as data in engine.Results; errors are
// reserved for configuration problems and unavailable external lookups.
//
// The packages under pkg/ can be used on their own: pkg/rules and
// pkg/processor hold the built-in families, pkg/registry flattens them into
// one name table, pkg/schema parses definitions, pkg/engine runs them and
// pkg/errformat renders the @{...} message templates.
package rulekit
