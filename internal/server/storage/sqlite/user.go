package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/videotube/internal/models"
	"github.com/iudanet/videotube/internal/server/storage"
)

const userColumns = `id, username, email, full_name, password, avatar, cover_image, refresh_token, created_at, updated_at`

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.Password,
		user.Avatar,
		user.CoverImage,
		user.RefreshToken,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		// UNIQUE на username или email
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	return s.scanUser(s.db.QueryRowContext(ctx, query, userID))
}

// GetUserByLogin retrieves user whose username or email equals login
func (s *Storage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ? OR email = ?`

	return s.scanUser(s.db.QueryRowContext(ctx, query, login, login))
}

// UserExists reports whether a user with the given username or email exists
func (s *Storage) UserExists(ctx context.Context, username, email string) (bool, error) {
	query := `SELECT COUNT(1) FROM users WHERE username = ? OR email = ?`

	var count int
	if err := s.db.QueryRowContext(ctx, query, username, email).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return count > 0, nil
}

// SetRefreshToken unconditionally writes the refresh-token slot
func (s *Storage) SetRefreshToken(ctx context.Context, userID, token string) error {
	query := `UPDATE users SET refresh_token = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, token, userID)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// RotateRefreshToken replaces oldToken with newToken only if the slot still
// holds oldToken. A zero rows-affected result means either the user is gone
// or the slot was overwritten by a concurrent rotation; both surface as
// ErrRefreshTokenMismatch so a stale token is never accepted.
func (s *Storage) RotateRefreshToken(ctx context.Context, userID, oldToken, newToken string) error {
	query := `
		UPDATE users
		SET refresh_token = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND refresh_token = ?
	`

	result, err := s.db.ExecContext(ctx, query, newToken, userID, oldToken)
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRefreshTokenMismatch
	}

	return nil
}

// scanUser читает одну строку users в модель
func (s *Storage) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.Password,
		&user.Avatar,
		&user.CoverImage,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
