package scenario

import "errors"

// Sentinel kinds for scenario resolution errors.
var (
	ErrUnknownScenario = errors.New("unknown scenario")
	ErrEmptyRoster     = errors.New("empty roster")
)
