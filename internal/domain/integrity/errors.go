package integrity

import "errors"

// Sentinel kinds for room validation failures.
var (
	ErrMalformedRoom        = errors.New("malformed room")
	ErrUnknownRole          = errors.New("unknown role")
	ErrDuplicateParticipant = errors.New("participant assigned twice")
)
