package results

import "errors"

// Sentinel kinds for results errors.
var (
	ErrDuplicateParticipant = errors.New("participant block already stored")
)
