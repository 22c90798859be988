// Package params extracts and coerces the arguments of rule DSL tokens.
//
// A token such as "integer::between(18,65)" is split by Extract into its
// name, type, function and raw parameter. Parse then coerces the raw text
// according to the rule's declared ParamType and ArgTypes:
//
//	tok := params.Extract("between(18,65)")
//	v, err := params.Parse(tok.Param, params.ParamRange, params.ArgInteger)
//	// v == params.Bounds{Min: int64(18), Max: int64(65)}
//
// Dates, times and date times are represented by the Date, Time and DateTime
// value objects. Their constructors are strict: a value is either fully
// extracted or an error is returned, never a partial value.
package params
