package processor

import "errors"

var (
	ErrUnknownFunction   = errors.New("unknown processor function")
	ErrDuplicateFunction = errors.New("duplicate processor function")
	ErrInvalidFunction   = errors.New("invalid processor function")
	ErrTransformFailed   = errors.New("transform failed")
	ErrNotNumeric        = errors.New("value is not numeric")
	ErrNotConvertible    = errors.New("value cannot be converted")
)
