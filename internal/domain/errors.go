package domain

import "errors"

// Sentinel errors returned by persistence collaborators.
var (
	ErrNotFound = errors.New("domain: not found")
	ErrConflict = errors.New("domain: conflict")
)
