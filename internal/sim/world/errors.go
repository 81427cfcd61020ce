package world

import "errors"

var (
	// ErrInvalidKind is returned when agent creation names an unknown kind.
	ErrInvalidKind = errors.New("invalid agent kind")
	// ErrUnknownBase is returned when agent creation references a base the world does not own.
	ErrUnknownBase = errors.New("unknown base")
	ErrBadRequest  = errors.New("bad request")
	ErrStopped     = errors.New("world loop not running")
)
