package message

import "errors"

// Sentinel errors for segment and message construction.
var (
	// ErrInvalidSegment indicates a segment whose type is empty or contains
	// characters outside the identifier set, or a value that cannot be
	// coerced into a Segment.
	ErrInvalidSegment = errors.New("message: invalid segment")

	// ErrInvalidMessage indicates a value whose shape cannot be coerced into
	// a Message.
	ErrInvalidMessage = errors.New("message: invalid message")
)
