// Package schema parses schema definitions into resolved, reusable
// execution plans.
//
// A field is defined either with the string DSL:
//
//	"require|integer|between(18,65)"
//
// or with the object form, which adds messages, labels, casting, defaults,
// custom checks and nested schemas:
//
//	name:
//	  require: true
//	  min: { rule: 3, message: "@{name} is too short" }
//	  cast: trim|case::title
//	address:
//	  schema:
//	    city: require
//
// Unqualified rule names resolve within the type of the last type rule seen
// in the field ("string" until one appears), then by registry key or alias,
// so "array|unique" checks array elements while "unique(users.email)" on a
// string field is the database lookup. Parameters are coerced once, here, and
// unknown names fail with a *FieldError wrapping ErrUnknownRule.
//
// Go maps are unordered: use *Object (decoded from JSON or YAML) to keep the
// written rule order. Plain maps are ordered by precedence instead.
package schema
