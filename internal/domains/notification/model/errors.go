package model

import "errors"

var (
	ErrMissingSessionID = errors.New("session id is required")
	ErrInvalidPayload   = errors.New("invalid notification payload")
)
