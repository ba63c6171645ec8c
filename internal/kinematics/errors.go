package kinematics

import "errors"

// Construction and configuration errors. The per-frame functions never fail.
var (
	// ErrEmptySystem indicates a system built with no bodies.
	ErrEmptySystem = errors.New("kinematics: system has no bodies")

	// ErrDuplicateBody indicates two bodies sharing one identifier.
	ErrDuplicateBody = errors.New("kinematics: duplicate body id")

	// ErrUnknownBody indicates a lookup for an identifier not in the system.
	ErrUnknownBody = errors.New("kinematics: unknown body id")

	// ErrInvalidBody indicates a body with an empty id or a NaN/Inf attribute.
	ErrInvalidBody = errors.New("kinematics: invalid body (empty id, NaN or Inf)")

	// ErrParameterBounds indicates a parameter value outside its valid range.
	ErrParameterBounds = errors.New("kinematics: parameter out of valid bounds")
)

// BodyError wraps an error with the offending body id.
type BodyError struct {
	ID      BodyID
	Wrapped error
}

func (e *BodyError) Error() string {
	return e.Wrapped.Error() + ": " + string(e.ID)
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}
