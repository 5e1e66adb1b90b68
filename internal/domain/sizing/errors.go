package sizing

import "errors"

// Sentinel kinds for sizing errors.
var (
	ErrInfeasible         = errors.New("participant count does not fit the room bounds")
	ErrInconsistentBounds = errors.New("inconsistent room bounds")
)
