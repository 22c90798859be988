package rules

import "errors"

var (
	// ErrUnknownFunction is returned when a family is asked for a function it does not own.
	ErrUnknownFunction = errors.New("unknown rule function")

	// ErrDuplicateFunction is returned when a name or alias is registered twice in a family.
	ErrDuplicateFunction = errors.New("duplicate rule function")

	// ErrInvalidFunction is returned for malformed function definitions.
	ErrInvalidFunction = errors.New("invalid rule function")

	// ErrLookupUnavailable is returned by lookup rules evaluated without a checker.
	ErrLookupUnavailable = errors.New("lookup checker unavailable")

	// ErrInvalidPattern is returned when a pattern parameter does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)
