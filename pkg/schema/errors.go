package schema

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRule       = errors.New("unknown rule")
	ErrInvalidDefinition = errors.New("invalid field definition")
	ErrInvalidPattern    = errors.New("invalid custom pattern")
	ErrInvalidCustom     = errors.New("invalid custom rule")
)

// FieldError scopes a parse error to the field and rule token that caused it.
type FieldError struct {
	Field string
	Rule  string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("field %q: rule %q: %v", e.Field, e.Rule, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
