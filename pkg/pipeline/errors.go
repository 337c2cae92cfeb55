package pipeline

import "errors"

var (
	// ErrNilEvent indicates Process was called without an event.
	ErrNilEvent = errors.New("pipeline: nil event")

	// ErrEmptyNickname indicates the dispatcher configuration lists an
	// empty nickname.
	ErrEmptyNickname = errors.New("pipeline: empty nickname")
)
