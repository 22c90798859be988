package params

import (
	"fmt"
	"strings"
)

// ParamType describes the shape of a rule argument.
type ParamType string

const (
	ParamNone           ParamType = "none"
	ParamSingle         ParamType = "single"
	ParamRange          ParamType = "range"
	ParamList           ParamType = "list"
	ParamFileSize       ParamType = "fileSize"
	ParamFieldReference ParamType = "fieldReference"
	ParamFieldEquals    ParamType = "fieldEquals"
	ParamFunction       ParamType = "function"
	ParamSchema         ParamType = "schema"
)

// ArgType is the semantic value type a raw parameter is coerced into.
type ArgType string

const (
	ArgString    ArgType = "string"
	ArgNumber    ArgType = "number"
	ArgInteger   ArgType = "integer"
	ArgFloat     ArgType = "float"
	ArgBoolean   ArgType = "boolean"
	ArgDate      ArgType = "date"
	ArgTime      ArgType = "time"
	ArgDateTime  ArgType = "datetime"
	ArgArray     ArgType = "array"
	ArgObject    ArgType = "object"
	ArgFile      ArgType = "file"
	ArgFieldName ArgType = "fieldName"
	ArgAny       ArgType = "any"
)

// Bounds is a coerced range parameter, e.g. between(5,10).
type Bounds struct {
	Min any
	Max any
}

// Map exposes the bounds to message templates as @{param.min} and @{param.max}.
func (b Bounds) Map() map[string]any {
	return map[string]any{"min": b.Min, "max": b.Max}
}

func (b Bounds) String() string {
	return fmt.Sprintf("%v,%v", b.Min, b.Max)
}

// FieldRef names another field of the value bag. It is resolved against the
// field context at validation time.
type FieldRef string

func (f FieldRef) String() string { return string(f) }

// FieldEquals is a "field=value" condition used by requireIf and requireUnless.
type FieldEquals struct {
	Field string
	Value string
}

// Map exposes the condition to message templates as @{param.field} and @{param.value}.
func (f FieldEquals) Map() map[string]any {
	return map[string]any{"field": f.Field, "value": f.Value}
}

func (f FieldEquals) String() string {
	return f.Field + "=" + f.Value
}

// Token is a DSL token split into its parts.
type Token struct {
	// Name is the full name segment, e.g. "integer::between" or "between".
	Name string
	// Type is the segment before "::", empty when the name is unqualified.
	Type string
	// Func is the segment after "::", or Name when unqualified.
	Func string
	// Param is the raw text between the parentheses.
	Param string
	// HasParam is false for tokens without parentheses.
	HasParam bool
}

// Qualified reports whether the token names its rule type explicitly.
func (t Token) Qualified() bool {
	return t.Type != ""
}

func (t Token) String() string {
	if !t.HasParam {
		return t.Name
	}
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteByte('(')
	b.WriteString(t.Param)
	b.WriteByte(')')
	return b.String()
}
