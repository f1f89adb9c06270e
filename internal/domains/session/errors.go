package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session is closed")
	ErrInvalidSeed     = errors.New("session seed requires a user with name and email")
	ErrInvalidUser     = errors.New("user snapshot requires name and email")
)
