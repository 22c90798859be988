package params

import "errors"

var (
	ErrInvalidParam     = errors.New("invalid rule parameter")
	ErrInvalidRange     = errors.New("invalid range parameter, expected exactly two bounds")
	ErrInvalidFileSize  = errors.New("invalid file size, expected <number><bytes|kb|mb|gb>")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTime      = errors.New("invalid time")
	ErrInvalidDateTime  = errors.New("invalid datetime")
	ErrInvalidCondition = errors.New("invalid field condition, expected field=value")
	ErrUnknownParamType = errors.New("unknown parameter type")
)
