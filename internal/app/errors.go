package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted       = errors.New("service not started")
	ErrNightExists      = errors.New("night already scheduled")
	ErrUnknownNight     = errors.New("unknown night")
	ErrNightJudged      = errors.New("night already has judged rooms")
	ErrDuplicateOutcome = errors.New("outcome already submitted")
	ErrQueueFull        = errors.New("outcome queue full")
)
