package gamepad

import "errors"

var (
	// ErrUnknownEvent is returned when registering a name the classifier never emits.
	ErrUnknownEvent = errors.New("unknown event name")
	// ErrWildcardDisabled is returned when registering "all" without Options.Wildcard.
	ErrWildcardDisabled = errors.New("wildcard registration is not enabled")
	// ErrNilHandler is returned when registering a nil handler.
	ErrNilHandler = errors.New("nil handler")
	// ErrSourceClosed is returned by Listen when the byte source reached EOF.
	ErrSourceClosed = errors.New("byte source closed")
)
