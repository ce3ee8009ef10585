package rand

import (
	"errors"
	"fmt"
)

// ErrInvalidBound is returned when a bounded integer is requested with a
// non-positive bound.
var ErrInvalidBound = errors.New("invalid bound")

// ErrInvalidRange is returned when the upper end of a range is not larger
// than the lower end.
var ErrInvalidRange = errors.New("invalid range")

// ErrInvalidState is returned when a state snapshot has the wrong layout or
// encodes a state that the family forbids.
var ErrInvalidState = errors.New("invalid state")

// ErrUnknownFamily is returned when a family name or tag is not recognized.
var ErrUnknownFamily = errors.New("unknown family")

// ErrJumpUnsupported is returned by Jump for families without an efficient
// jump-ahead.
var ErrJumpUnsupported = errors.New("jump not supported")

func invalidState(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidState}, args...)...)
}
