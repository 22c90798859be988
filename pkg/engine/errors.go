package engine

import "errors"

// ErrUnresolvedRule is returned when a schema rule has nothing to execute.
// It signals a schema built outside the parser, never bad input.
var ErrUnresolvedRule = errors.New("unresolved rule")
