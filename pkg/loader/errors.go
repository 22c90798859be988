package loader

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported schema format")
	ErrParseDocument     = errors.New("failed to parse schema document")
	ErrReadFile          = errors.New("failed to read schema file")
)
