package partition

import "errors"

// Sentinel kinds for partitioning errors.
var (
	ErrUnknownMode        = errors.New("unknown partition mode")
	ErrInsufficientChairs = errors.New("insufficient chairs")
	ErrCountMismatch      = errors.New("room counts do not match the roster size")
)
