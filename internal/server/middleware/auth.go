package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/videotube/internal/server/handlers"
	"github.com/iudanet/videotube/internal/server/token"
)

// AuthMiddleware создает middleware для проверки access token
// Токен берется из заголовка Authorization (Bearer) либо из cookie accessToken
// Идентичность пользователя кладется в контекст запроса
func AuthMiddleware(logger *slog.Logger, issuer *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := accessTokenFromRequest(r)
			if tokenString == "" {
				logger.Warn("missing access token", "path", r.URL.Path)
				unauthorized(w, "unauthorized request")
				return
			}

			// Валидируем токен
			claims, err := issuer.VerifyAccess(tokenString)
			if err != nil {
				logger.Warn("invalid access token", "error", err)
				unauthorized(w, "invalid access token")
				return
			}

			// Добавляем данные из токена в контекст
			ctx := context.WithValue(r.Context(), handlers.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, handlers.UsernameKey, claims.Username)

			logger.Debug("user authenticated", "user_id", claims.UserID, "username", claims.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// accessTokenFromRequest извлекает access token из запроса
func accessTokenFromRequest(r *http.Request) string {
	// Сначала заголовок Authorization: "Bearer <token>"
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}

	// Затем cookie
	if cookie, err := r.Cookie(handlers.AccessTokenCookie); err == nil {
		return cookie.Value
	}

	return ""
}

// unauthorized отправляет 401 в стандартном конверте ошибки
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = fmt.Fprintf(w, `{"statusCode":401,"message":%q,"success":false,"errors":[]}`, message)
}
