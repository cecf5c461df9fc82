package domain

import "errors"

var (
	// Common domain errors
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrTransportConflict = errors.New("another instance is consuming the update stream")
	ErrNoMessage         = errors.New("transport returned no message")
	ErrNilHandler        = errors.New("nil handler")
)
