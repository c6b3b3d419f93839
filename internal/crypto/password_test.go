package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct-horse-battery", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"), "expected bcrypt hash prefix")
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestHashPassword_Salted(t *testing.T) {
	// bcrypt использует случайную соль: два хеша одного пароля различаются
	hash1, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)
	hash2, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  bool
	}{
		{name: "correct password", password: "correct-horse-battery", hash: hash, wantErr: false},
		{name: "wrong password", password: "wrong-password", hash: hash, wantErr: true},
		{name: "empty password", password: "", hash: hash, wantErr: true},
		{name: "empty hash", password: "correct-horse-battery", hash: "", wantErr: true},
		{name: "garbage hash", password: "correct-horse-battery", hash: "not-a-hash", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword(tt.password, tt.hash)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
