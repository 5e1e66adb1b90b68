package allocation

import "errors"

// Sentinel kinds for allocation errors.
var (
	ErrTooFewParticipants = errors.New("too few participants for the room")
	ErrNoEligibleChair    = errors.New("no eligible chair judge")
)
