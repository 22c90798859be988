// Package rules holds the validation function families of the engine.
//
// A Family owns the functions of one value type ("string", "integer", "file",
// ...). Every family exposes a canonical type check named after the family
// plus refinement functions such as min, max or between. Each Func runs an
// ordered list of Steps; the first failing step decides the reported message
// template.
//
//	f := rules.Integer()
//	out, err := f.Validate("between", rules.Input{
//		Value: "70",
//		Param: params.Bounds{Min: int64(18), Max: int64(65)},
//	})
//	// out.Valid == false
//	// out.Message == "@{name} must be between @{param.min} and @{param.max}"
//
// Messages are templates rendered by pkg/errformat with the field label,
// the coerced parameter and, for cross-field rules, the target field.
//
// Families are immutable once built and safe for concurrent use. Cross-field
// rules only read the Fields snapshot passed in Input.
package rules
