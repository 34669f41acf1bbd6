package trial

import "errors"

var (
	// ErrUnknownValue indicates an enum name or value outside its set.
	ErrUnknownValue = errors.New("limbshift: unknown value")

	// ErrInvalidAngle indicates a NaN or infinite angle offset.
	ErrInvalidAngle = errors.New("limbshift: invalid angle offset")
)
