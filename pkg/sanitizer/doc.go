// Package sanitizer provides the string and numeric transforms behind the
// case, trim and math processors, and the label casing used in error messages.
//
// Case conversions split their input into words on separators and case
// boundaries, so they compose in any order:
//
//	sanitizer.ToSnakeCase("billingAddress")  // "billing_address"
//	sanitizer.ToCamelCase("billing_address") // "billingAddress"
//	sanitizer.Label("billing_address")       // "Billing Address"
//
// Apply and Compose build pipelines out of the single-value helpers:
//
//	clean := sanitizer.Compose(sanitizer.Trim, sanitizer.RemoveExtraWhitespace, sanitizer.ToLower)
//	clean("  Mixed   CASE ") // "mixed case"
//
// None of the helpers returns an error and all of them are safe for
// concurrent use.
package sanitizer
