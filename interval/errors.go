package interval

import "errors"

// Sentinel errors for interval operations. Callers match them with errors.Is.
var (
	// ErrInvalidInterval indicates Start > End or a NaN endpoint.
	ErrInvalidInterval = errors.New("interval: start must not exceed end")

	// ErrOutOfBounds indicates a member interval that is not contained in the
	// bound passed to Complement.
	ErrOutOfBounds = errors.New("interval: member exceeds complement bound")

	// ErrBadJoinGap indicates a negative or NaN join gap passed to Normalize.
	ErrBadJoinGap = errors.New("interval: join gap must be a non-negative number")
)
