package storage

import (
	"context"

	"github.com/iudanet/videotube/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if username or email is already taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// GetUserByLogin retrieves user whose username or email equals login
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)

	// UserExists reports whether a user with the given username or email exists
	UserExists(ctx context.Context, username, email string) (bool, error)

	// SetRefreshToken unconditionally writes the refresh-token slot
	// An empty token clears the slot (logout)
	// Returns ErrUserNotFound if user doesn't exist
	SetRefreshToken(ctx context.Context, userID, token string) error

	// RotateRefreshToken replaces oldToken with newToken only if the slot
	// still holds oldToken (compare-and-swap)
	// Returns ErrRefreshTokenMismatch if the slot holds something else
	RotateRefreshToken(ctx context.Context, userID, oldToken, newToken string) error
}
