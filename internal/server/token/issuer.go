// Package token implements issuance and rotation of the signed token pair.
// The access token is a stateless short-lived assertion of the user identity;
// the refresh token is long-lived and persisted in the single slot on the
// user record, so only the most recently issued refresh token is valid.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iudanet/videotube/internal/server/storage"
)

// Config содержит конфигурацию подписи токенов
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// AccessClaims представляет JWT claims access token
type AccessClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims представляет JWT claims refresh token
// В refresh token кладется только идентификатор пользователя
type RefreshClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Pair представляет выданную пару токенов
type Pair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // время жизни access token в секундах
}

// Issuer выдает пары токенов и сохраняет refresh token на записи пользователя
type Issuer struct {
	users storage.UserStorage
	cfg   Config
}

// NewIssuer creates a new token issuer
func NewIssuer(users storage.UserStorage, cfg Config) *Issuer {
	return &Issuer{
		users: users,
		cfg:   cfg,
	}
}

// Issue загружает пользователя, подписывает пару токенов и безусловно
// записывает refresh token в слот на записи пользователя (login)
func (i *Issuer) Issue(ctx context.Context, userID string) (*Pair, error) {
	pair, err := i.sign(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := i.users.SetRefreshToken(ctx, userID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return pair, nil
}

// Rotate подписывает новую пару и заменяет presented на новый refresh token
// атомарно (compare-and-swap). Если слот уже содержит другой токен,
// возвращает storage.ErrRefreshTokenMismatch - presented устарел
func (i *Issuer) Rotate(ctx context.Context, userID, presented string) (*Pair, error) {
	pair, err := i.sign(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := i.users.RotateRefreshToken(ctx, userID, presented, pair.RefreshToken); err != nil {
		if errors.Is(err, storage.ErrRefreshTokenMismatch) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return pair, nil
}

// sign загружает пользователя и подписывает обе части пары
func (i *Issuer) sign(ctx context.Context, userID string) (*Pair, error) {
	user, err := i.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	now := time.Now()

	accessClaims := AccessClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    i.cfg.Issuer,
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(i.cfg.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	// jti гарантирует уникальность каждого refresh token: у двух пар,
	// подписанных в одну секунду, остальные claims совпадают
	refreshClaims := RefreshClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.RefreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    i.cfg.Issuer,
		},
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(i.cfg.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &Pair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(i.cfg.AccessTTL.Seconds()),
	}, nil
}

// VerifyAccess валидирует и парсит access token
func (i *Issuer) VerifyAccess(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, i.keyFunc(i.cfg.AccessSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AccessClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// VerifyRefresh валидирует и парсит refresh token
func (i *Issuer) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, i.keyFunc(i.cfg.RefreshSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*RefreshClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// keyFunc возвращает jwt.Keyfunc, принимающий только HMAC подписи
func (i *Issuer) keyFunc(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}
}
