package lookup

import "errors"

var (
	ErrInvalidTarget    = errors.New("invalid lookup target")
	ErrLookupFailed     = errors.New("lookup failed")
	ErrNotConnected     = errors.New("lookup backend did not become ready")
	ErrParseConnString  = errors.New("failed to parse connection string")
	ErrHealthcheck      = errors.New("lookup backend healthcheck failed")
	ErrTargetNotAllowed = errors.New("lookup target not allowed")
)
