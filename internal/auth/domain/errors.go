package domain

import "errors"

var (
	// ErrInvalidCredentials covers unknown users and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidExpiry      = errors.New("override expiry must be between 1 and 72 hours")
	ErrEmptyUsername      = errors.New("username is required")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)
