package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/videotube/internal/apperr"
	"github.com/iudanet/videotube/internal/crypto"
	"github.com/iudanet/videotube/internal/models"
	"github.com/iudanet/videotube/internal/server/media"
	"github.com/iudanet/videotube/internal/server/storage"
	"github.com/iudanet/videotube/internal/server/token"
	"github.com/iudanet/videotube/internal/validation"
	"github.com/iudanet/videotube/pkg/api"
)

const (
	// maxMultipartMemory лимит памяти для разбора multipart форм (32 MB)
	maxMultipartMemory = 32 << 20

	// AccessTokenCookie имя cookie с access token
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie имя cookie с refresh token
	RefreshTokenCookie = "refreshToken"
)

// AuthHandler обрабатывает запросы регистрации и авторизации
type AuthHandler struct {
	logger     *slog.Logger
	users      storage.UserStorage
	issuer     *token.Issuer
	uploader   media.Uploader
	tempDir    string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(
	logger *slog.Logger,
	users storage.UserStorage,
	issuer *token.Issuer,
	uploader media.Uploader,
	tempDir string,
	accessTTL, refreshTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		logger:     logger,
		users:      users,
		issuer:     issuer,
		uploader:   uploader,
		tempDir:    tempDir,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register обрабатывает POST /api/v1/users/register
// multipart form: fullName, email, username, password + файлы avatar (обязательный)
// и coverImage (опциональный)
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return apperr.Validation("invalid multipart form")
	}

	fullName := strings.TrimSpace(r.FormValue("fullName"))
	email := strings.TrimSpace(r.FormValue("email"))
	username := strings.ToLower(strings.TrimSpace(r.FormValue("username")))
	password := r.FormValue("password")

	if err := validation.RequireFields(
		validation.Field{Name: "fullName", Value: fullName},
		validation.Field{Name: "email", Value: email},
		validation.Field{Name: "username", Value: username},
		validation.Field{Name: "password", Value: password},
	); err != nil {
		return apperr.Validation(err.Error())
	}

	if err := validation.ValidateUsername(username); err != nil {
		return apperr.Validation(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return apperr.Validation(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return apperr.Validation(err.Error())
	}

	exists, err := h.users.UserExists(ctx, username, email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to check user existence", slog.Any("error", err))
		return apperr.Internal("internal server error")
	}
	if exists {
		return apperr.Conflict("user with email or username already exists")
	}

	// Аватар обязателен
	avatarFile := formFile(r, "avatar")
	if avatarFile == nil {
		return apperr.Validation("avatar file is required")
	}

	avatarPath, err := h.saveUpload(avatarFile)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save avatar upload", slog.Any("error", err))
		return apperr.Internal("failed to accept uploaded file")
	}

	coverPath := ""
	if coverFile := formFile(r, "coverImage"); coverFile != nil {
		coverPath, err = h.saveUpload(coverFile)
		if err != nil {
			// Обложка опциональна, деградируем молча
			h.logger.WarnContext(ctx, "failed to save cover upload", slog.Any("error", err))
			coverPath = ""
		}
	}

	// Загрузчик удаляет переданный ему временный файл сам
	avatarResult, err := h.uploader.Upload(ctx, avatarPath)
	if err != nil || avatarResult == nil || avatarResult.URL == "" {
		// Файл обложки загрузчику не передавался - убираем сами
		if coverPath != "" {
			_ = os.Remove(coverPath)
		}
		h.logger.ErrorContext(ctx, "avatar upload failed", slog.Any("error", err))
		if errors.Is(err, media.ErrNotConfigured) {
			return apperr.Upload(http.StatusInternalServerError, "media uploader is not configured")
		}
		return apperr.Upload(http.StatusBadRequest, "avatar upload failed")
	}

	coverURL := ""
	if coverPath != "" {
		coverResult, err := h.uploader.Upload(ctx, coverPath)
		if err != nil {
			h.logger.WarnContext(ctx, "cover image upload failed", slog.Any("error", err))
		} else {
			coverURL = coverResult.URL
		}
	}

	hashedPassword, err := crypto.HashPassword(password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		return apperr.Internal("internal server error")
	}

	now := time.Now()
	user := &models.User{
		ID:         uuid.New().String(),
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Password:   hashedPassword,
		Avatar:     avatarResult.URL,
		CoverImage: coverURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return apperr.Conflict("user with email or username already exists")
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		return apperr.Internal("internal server error")
	}

	// Перечитываем созданную запись без секретных полей
	created, err := h.users.GetUserByID(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load created user", slog.Any("error", err))
		return apperr.Internal("something went wrong while registering the user")
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", username),
		slog.String("user_id", user.ID))

	sendResponse(h.logger, w, http.StatusCreated, created.Public(), "user registered successfully")
	return nil
}

// Login обрабатывает POST /api/v1/users/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	identifier := strings.ToLower(strings.TrimSpace(req.Username))
	if identifier == "" {
		identifier = strings.TrimSpace(req.Email)
	}
	if identifier == "" {
		return apperr.Validation("username or email is required")
	}

	user, err := h.users.GetUserByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return apperr.NotFound("user does not exist")
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		return apperr.Internal("internal server error")
	}

	if err := crypto.VerifyPassword(req.Password, user.Password); err != nil {
		return apperr.Auth("invalid user credentials")
	}

	pair, err := h.issuer.Issue(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue tokens", slog.Any("error", err))
		return apperr.Internal("failed to issue tokens")
	}

	// Перечитываем запись без секретных полей
	loggedIn, err := h.users.GetUserByID(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to reload user", slog.Any("error", err))
		return apperr.Internal("internal server error")
	}

	h.setAuthCookies(w, pair)

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	sendResponse(h.logger, w, http.StatusOK, api.LoginResponse{
		User:         loggedIn.Public(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, "user logged in successfully")
	return nil
}

// Logout обрабатывает POST /api/v1/users/logout
// Требует аутентификации: user id кладет в контекст auth middleware
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		return apperr.Auth("unauthorized request")
	}

	// Очищаем слот refresh token - все выданные ранее refresh токены
	// перестают действовать
	if err := h.users.SetRefreshToken(ctx, userID, ""); err != nil && !errors.Is(err, storage.ErrUserNotFound) {
		h.logger.ErrorContext(ctx, "failed to clear refresh token", slog.Any("error", err))
		return apperr.Internal("internal server error")
	}

	h.clearAuthCookies(w)

	h.logger.InfoContext(ctx, "user logged out successfully", slog.String("user_id", userID))

	sendResponse(h.logger, w, http.StatusOK, nil, "user logged out successfully")
	return nil
}

// Refresh обрабатывает POST /api/v1/users/refresh-token
// Refresh token берется из cookie либо из тела запроса
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	presented := h.refreshTokenFromRequest(r)
	if presented == "" {
		return apperr.Auth("unauthorized request")
	}

	claims, err := h.issuer.VerifyRefresh(presented)
	if err != nil {
		return apperr.Auth(err.Error())
	}

	user, err := h.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return apperr.Auth("invalid refresh token")
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		return apperr.Internal("internal server error")
	}

	// Слот хранит только последний выданный refresh token: предъявление
	// устаревшего токена означает его повторное использование
	if user.RefreshToken != presented {
		return apperr.Auth("refresh token is expired or used")
	}

	pair, err := h.issuer.Rotate(ctx, user.ID, presented)
	if err != nil {
		if errors.Is(err, storage.ErrRefreshTokenMismatch) {
			// Конкурентная ротация успела первой
			return apperr.Auth("refresh token is expired or used")
		}
		h.logger.ErrorContext(ctx, "failed to rotate tokens", slog.Any("error", err))
		return apperr.Internal("failed to issue tokens")
	}

	h.setAuthCookies(w, pair)

	h.logger.InfoContext(ctx, "tokens refreshed successfully", slog.String("user_id", user.ID))

	sendResponse(h.logger, w, http.StatusOK, api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, "access token refreshed")
	return nil
}

// CurrentUser обрабатывает GET /api/v1/users/me
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		return apperr.Auth("unauthorized request")
	}

	user, err := h.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return apperr.NotFound("user not found")
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		return apperr.Internal("internal server error")
	}

	sendResponse(h.logger, w, http.StatusOK, user.Public(), "current user fetched successfully")
	return nil
}

// refreshTokenFromRequest извлекает refresh token из cookie или тела запроса
func (h *AuthHandler) refreshTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		return req.RefreshToken
	}

	return ""
}

// setAuthCookies выставляет http-only secure cookies с парой токенов
func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, pair *token.Pair) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(h.accessTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookies сбрасывает обе auth cookies
func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// formFile возвращает первый файл поля или nil
func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// saveUpload сохраняет multipart файл во временный файл
// Дальнейшая судьба файла - за загрузчиком (он удаляет файл сам)
func (h *AuthHandler) saveUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.CreateTemp(h.tempDir, "upload-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return dst.Name(), nil
}
