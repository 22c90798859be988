// Package predicate holds the primitive type and shape checks every rule
// family is built on, together with the coercion helpers that turn loosely
// typed input (decoded JSON, form values, YAML) into Go numbers, booleans,
// strings, slices and maps.
//
// All functions are pure and safe for concurrent use.
//
// # Usage
//
//	predicate.IsInteger("42")        // true
//	predicate.IsFloat("42")          // false, a literal decimal point is required
//	predicate.IsEmpty("   ")         // true
//	predicate.IsArrayOf([]any{1, 2}, "integer") // true
//
// Numbers are stringified without exponent or trailing zeros before pattern
// checks, so float64(30) from a JSON document satisfies IsInteger.
package predicate
