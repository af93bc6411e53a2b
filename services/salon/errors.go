package salon

import "errors"

var (
	// ErrConflict reports that the requested slot is no longer available
	// (the HTTP-409 case). Distinct from transport failure so the dialogue
	// can surface it separately.
	ErrConflict = errors.New("time slot is no longer available")

	// ErrUnavailable reports a transport-level failure: the provider could
	// not be reached, timed out, or answered with an unexpected status.
	ErrUnavailable = errors.New("salon provider unavailable")
)
