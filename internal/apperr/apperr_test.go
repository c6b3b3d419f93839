package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		wantCode int
	}{
		{name: "validation", err: Validation("bad input"), wantCode: http.StatusBadRequest},
		{name: "auth", err: Auth("no"), wantCode: http.StatusUnauthorized},
		{name: "not found", err: NotFound("missing"), wantCode: http.StatusNotFound},
		{name: "conflict", err: Conflict("taken"), wantCode: http.StatusConflict},
		{name: "internal", err: Internal("boom"), wantCode: http.StatusInternalServerError},
		{name: "upload 400", err: Upload(http.StatusBadRequest, "upload failed"), wantCode: http.StatusBadRequest},
		{name: "upload 500", err: Upload(http.StatusInternalServerError, "host down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}

func TestFrom(t *testing.T) {
	appErr := Conflict("taken")

	// прямая доменная ошибка
	assert.Equal(t, appErr, From(appErr))

	// обернутая доменная ошибка
	wrapped := fmt.Errorf("register: %w", appErr)
	assert.Equal(t, appErr, From(wrapped))

	// неизвестная ошибка не утекает наружу
	got := From(errors.New("sql: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, got.Code)
	assert.Equal(t, "internal server error", got.Message)
}
