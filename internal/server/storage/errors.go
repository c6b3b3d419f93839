package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that a user with this username or email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrRefreshTokenMismatch indicates that a conditional refresh-token update
	// found a different token in the slot (rotation race or stale token)
	ErrRefreshTokenMismatch = errors.New("refresh token mismatch")
)
