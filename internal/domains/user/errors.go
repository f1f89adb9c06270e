package user

import "errors"

// Session / record errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrNilUser      = errors.New("user snapshot is required")
)

// Profile editor errors
var (
	// Commit thứ hai trong lúc đang saving bị từ chối, không xếp hàng
	ErrSaveInProgress = errors.New("profile save already in progress")
	ErrStaleDraft     = errors.New("profile changed since the draft was taken")
)
