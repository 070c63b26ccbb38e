package services

import "errors"

// Service-level error taxonomy. Controllers map these onto HTTP statuses;
// anything else is treated as an internal error.
var (
	ErrNotFound          = errors.New("not_found")
	ErrConflict          = errors.New("conflict")
	ErrRoomUnavailable   = errors.New("room_unavailable")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrInvalidState      = errors.New("invalid_state")
	ErrValidation        = errors.New("validation")
)
