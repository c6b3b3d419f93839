package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/videotube/internal/apperr"
	"github.com/iudanet/videotube/pkg/api"
)

// Func представляет обработчик, который может вернуть доменную ошибку
// Обработчики сами не форматируют ответы с ошибками
type Func func(w http.ResponseWriter, r *http.Request) error

// Wrap превращает Func в http.HandlerFunc: любая возвращенная ошибка
// конвертируется в конверт ошибки на единственной границе
func Wrap(logger *slog.Logger, fn Func) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		appErr := apperr.From(err)

		logLevel := slog.LevelWarn
		if appErr.Code >= 500 {
			logLevel = slog.LevelError
		}
		logger.Log(r.Context(), logLevel, "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", appErr.Code,
			"error", err.Error(),
		)

		errs := appErr.Errors
		if errs == nil {
			errs = []string{}
		}

		writeJSON(logger, w, appErr.Code, api.ErrorResponse{
			StatusCode: appErr.Code,
			Message:    appErr.Message,
			Errors:     errs,
			Success:    false,
		})
	}
}

// sendResponse отправляет успешный ответ в стандартном конверте
func sendResponse(logger *slog.Logger, w http.ResponseWriter, statusCode int, data any, message string) {
	writeJSON(logger, w, statusCode, api.Response{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// writeJSON сериализует payload в ResponseWriter
func writeJSON(logger *slog.Logger, w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}
