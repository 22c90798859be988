package registry

import "errors"

var (
	// ErrDuplicateName is returned by Build when a key or alias is registered twice.
	ErrDuplicateName = errors.New("duplicate registry name")

	// ErrUnknownName is returned when an unresolved entry is executed.
	ErrUnknownName = errors.New("unknown registry name")
)
