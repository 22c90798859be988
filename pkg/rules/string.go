package rules

import (
	"net"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/predicate"
)

var (
	emailRegex        = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	urlRegex          = regexp.MustCompile(`^(https?://)?([\da-zA-Z-]+\.)+[a-zA-Z]{2,}(:\d{1,5})?(/\S*)?$`)
	uuidRegex         = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-8][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)
	mobileRegex       = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodeRegex      = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	panRegex          = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	ifscRegex         = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	slugRegex         = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	alphaRegex        = regexp.MustCompile(`^[a-zA-Z]+$`)
	alphaNumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaDashRegex    = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	numericRegex      = regexp.MustCompile(`^[0-9]+$`)
	specialCharRegex  = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?~` + "`" + `]`)
)

const minStrongPasswordLength = 8

// String is the family of string rules. Length rules count runes.
func String() *Family {
	return NewFamily("string", "string").MustRegister(
		&Func{
			Name:    "string",
			Aliases: []string{"string", "str"},
			Steps:   []Step{CheckValue(isString, "@{name} must be a string")},
		},
		patternFunc("email", emailRegex, "@{name} must be a valid email address"),
		patternFunc("url", urlRegex, "@{name} must be a valid URL"),
		patternFunc("uuid", uuidRegex, "@{name} must be a valid UUID"),
		&Func{
			Name:      "uuidVersion",
			Aliases:   []string{"uuidVersion"},
			ParamType: params.ParamSingle,
			ArgTypes:  []params.ArgType{params.ArgInteger},
			Steps: []Step{
				Check(func(in Input) bool {
					id, err := uuid.Parse(predicate.ToString(in.Value))
					if err != nil {
						return false
					}
					return numeric(int(id.Version()), in.Param, eq)
				}, "@{name} must be a version @{param} UUID"),
			},
		},
		patternFunc("mobile", mobileRegex, "@{name} must be a valid mobile number"),
		patternFunc("pincode", pincodeRegex, "@{name} must be a valid pincode"),
		patternFunc("pan", panRegex, "@{name} must be a valid PAN"),
		patternFunc("ifsc", ifscRegex, "@{name} must be a valid IFSC code"),
		patternFunc("slug", slugRegex, "@{name} must be a valid slug"),
		patternFunc("alpha", alphaRegex, "@{name} must contain only letters"),
		patternFunc("alphaNumeric", alphaNumericRegex, "@{name} must contain only letters and numbers", "alphanum"),
		patternFunc("alphaDash", alphaDashRegex, "@{name} must contain only letters, numbers, dashes and underscores"),
		patternFunc("numeric", numericRegex, "@{name} must contain only digits"),
		&Func{
			Name:    "lowercase",
			Aliases: []string{"lowercase"},
			Steps: []Step{CheckValue(func(v any) bool {
				s := predicate.ToString(v)
				return s == strings.ToLower(s)
			}, "@{name} must be lowercase")},
		},
		&Func{
			Name:    "uppercase",
			Aliases: []string{"uppercase"},
			Steps: []Step{CheckValue(func(v any) bool {
				s := predicate.ToString(v)
				return s == strings.ToUpper(s)
			}, "@{name} must be uppercase")},
		},
		&Func{
			Name:    "json",
			Aliases: []string{"json"},
			Steps:   []Step{CheckValue(predicate.IsJSON, "@{name} must be a valid JSON string")},
		},
		&Func{
			Name:    "ip",
			Aliases: []string{"ip"},
			Steps: []Step{CheckValue(func(v any) bool {
				return net.ParseIP(strings.TrimSpace(predicate.ToString(v))) != nil
			}, "@{name} must be a valid IP address")},
		},
		&Func{
			Name:    "strongPassword",
			Aliases: []string{"strongPassword"},
			Steps: []Step{
				CheckValue(func(v any) bool {
					return predicate.Len(predicate.ToString(v)) >= minStrongPasswordLength
				}, "@{name} must be at least 8 characters long"),
				CheckValue(hasRune(unicode.IsUpper), "@{name} must contain an uppercase letter"),
				CheckValue(hasRune(unicode.IsLower), "@{name} must contain a lowercase letter"),
				CheckValue(hasRune(unicode.IsDigit), "@{name} must contain a digit"),
				Pattern(specialCharRegex, "@{name} must contain a special character"),
			},
		},
		&Func{
			Name:      "min",
			ParamType: params.ParamSingle,
			ArgTypes:  []params.ArgType{params.ArgInteger},
			Steps: []Step{Check(func(in Input) bool {
				return numeric(textLen(in.Value), in.Param, gte)
			}, "@{name} must be at least @{param} characters")},
		},
		&Func{
			Name:      "max",
			ParamType: params.ParamSingle,
			ArgTypes:  []params.ArgType{params.ArgInteger},
			Steps: []Step{Check(func(in Input) bool {
				return numeric(textLen(in.Value), in.Param, lte)
			}, "@{name} must not exceed @{param} characters")},
		},
		&Func{
			Name:      "between",
			ParamType: params.ParamRange,
			ArgTypes:  []params.ArgType{params.ArgInteger},
			Steps: []Step{Check(func(in Input) bool {
				return inLengthRange(textLen(in.Value), in.Param)
			}, "@{name} must be between @{param.min} and @{param.max} characters")},
		},
		&Func{
			Name:      "length",
			Aliases:   []string{"len"},
			ParamType: params.ParamSingle,
			ArgTypes:  []params.ArgType{params.ArgInteger},
			Steps: []Step{Check(func(in Input) bool {
				return numeric(textLen(in.Value), in.Param, eq)
			}, "@{name} must be exactly @{param} characters")},
		},
		&Func{
			Name:      "equals",
			ParamType: params.ParamSingle,
			ArgTypes:  []params.ArgType{params.ArgString},
			Steps: []Step{Check(func(in Input) bool {
				return sameText(in.Value, in.Param)
			}, "@{name} must be @{param}")},
		},
		&Func{
			Name:      "notEquals",
			ParamType: params.ParamSingle,
			ArgTypes:  []params.ArgType{params.ArgString},
			Steps: []Step{Check(func(in Input) bool {
				return !sameText(in.Value, in.Param)
			}, "@{name} must not be @{param}")},
		},
		&Func{
			Name:      "in",
			ParamType: params.ParamList,
			ArgTypes:  []params.ArgType{params.ArgString},
			Steps: []Step{Check(func(in Input) bool {
				return listContains(in.Param, in.Value)
			}, "@{name} must be one of @{param}")},
		},
		&Func{
			Name:      "notIn",
			ParamType: params.ParamList,
			ArgTypes:  []params.ArgType{params.ArgString},
			Steps: []Step{Check(func(in Input) bool {
				return !listContains(in.Param, in.Value)
			}, "@{name} must not be one of @{param}")},
		},
		&Func{
			Name:      "contains",
			ParamType: params.ParamSingle,
			ArgTypes:  []params.ArgType{params.ArgString},
			Steps: []Step{Check(func(in Input) bool {
				return strings.Contains(predicate.ToString(in.Value), predicate.ToString(in.Param))
			}, "@{name} must contain @{param}")},
		},
		&Func{
			Name:      "startsWith",
			ParamType: params.ParamSingle,
			ArgTypes:  []params.ArgType{params.ArgString},
			Steps: []Step{Check(func(in Input) bool {
				return strings.HasPrefix(predicate.ToString(in.Value), predicate.ToString(in.Param))
			}, "@{name} must start with @{param}")},
		},
		&Func{
			Name:      "endsWith",
			ParamType: params.ParamSingle,
			ArgTypes:  []params.ArgType{params.ArgString},
			Steps: []Step{Check(func(in Input) bool {
				return strings.HasSuffix(predicate.ToString(in.Value), predicate.ToString(in.Param))
			}, "@{name} must end with @{param}")},
		},
		&Func{
			Name:      "pattern",
			Aliases:   []string{"regex"},
			ParamType: params.ParamFunction,
			Prepare:   compilePattern,
			Steps:     []Step{Check(matchPattern, "@{name} format is invalid")},
		},
	)
}

// patternFunc builds a parameterless function whose single step is a regex match.
// The function name is also registered as a global alias.
func patternFunc(name string, re *regexp.Regexp, message string, aliases ...string) *Func {
	return &Func{
		Name:    name,
		Aliases: append([]string{name}, aliases...),
		Steps:   []Step{Pattern(re, message)},
	}
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func textLen(v any) int {
	return predicate.Len(predicate.ToString(v))
}

func hasRune(fn func(rune) bool) func(any) bool {
	return func(v any) bool {
		return strings.IndexFunc(predicate.ToString(v), fn) >= 0
	}
}
