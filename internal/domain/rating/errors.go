package rating

import "errors"

// Sentinel kinds for rating errors.
var (
	ErrUnknownParticipant = errors.New("participant not in the roster snapshot")
	ErrMissingScores      = errors.New("missing judge scores")
	ErrInvalidRanks       = errors.New("invalid team ranks")
	ErrIncompleteTeams    = errors.New("incomplete teams")
	ErrUnsupportedFormat  = errors.New("unsupported outcome format")
)
