package room

import (
	"errors"
	"fmt"
)

// ErrContract marks a caller bug: an input that violates an operation's
// preconditions. Every contract error in this module wraps it.
var ErrContract = errors.New("contract violation")

// ErrOutOfRange indicates a coordinate outside [0, Size).
var ErrOutOfRange = fmt.Errorf("%w: room: coordinate out of range", ErrContract)
