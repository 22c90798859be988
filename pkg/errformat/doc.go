// Package errformat renders validation message templates.
//
// A template contains @{...} placeholders resolved against arbitrary data:
// maps, slices, structs (fields matched case-insensitively) and any value
// with a Map() map[string]any method, such as rule parameters:
//
//	errformat.Format("@{name} must be between @{param.min} and @{param.max}", map[string]any{
//		"name":  "Age",
//		"param": params.Bounds{Min: int64(18), Max: int64(65)},
//	})
//	// "Age must be between 18 and 65"
//
// Candidates separated by "||" are tried in order, quoted literals act as
// defaults, and modifiers (trim, upper, lower, capitalize, title) follow a
// candidate after "|". Broken paths render as an empty string.
package errformat
