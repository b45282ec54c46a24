package model

import "errors"

var (
	ErrRoundNotOpen       = errors.New("round is not open")
	ErrWindowExpired      = errors.New("voting window expired")
	ErrUnknownOption      = errors.New("unknown option")
	ErrInvalidDuration    = errors.New("invalid round duration")
	ErrNoCategorySelected = errors.New("no category selected")
	ErrAlreadyClosed      = errors.New("round already closed")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrResultsSealed      = errors.New("results are sealed until the round closes")
	ErrNoParticipant      = errors.New("participant identity required")

	// Returned by storage drivers.
	ErrNotFound        = errors.New("resource not found")
	ErrVersionConflict = errors.New("version conflict")
)
