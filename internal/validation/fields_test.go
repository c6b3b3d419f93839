package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireFields(t *testing.T) {
	tests := []struct {
		name    string
		fields  []Field
		wantErr bool
		errMsg  string
	}{
		{
			name: "all fields present",
			fields: []Field{
				{Name: "fullName", Value: "Alice Smith"},
				{Name: "email", Value: "alice@example.com"},
			},
			wantErr: false,
		},
		{
			name: "empty field",
			fields: []Field{
				{Name: "fullName", Value: ""},
			},
			wantErr: true,
			errMsg:  "fullName is required",
		},
		{
			name: "whitespace-only field",
			fields: []Field{
				{Name: "username", Value: "   "},
			},
			wantErr: true,
			errMsg:  "username is required",
		},
		{
			name: "first blank field reported",
			fields: []Field{
				{Name: "email", Value: "alice@example.com"},
				{Name: "username", Value: "\t"},
				{Name: "password", Value: ""},
			},
			wantErr: true,
			errMsg:  "username is required",
		},
		{
			name:    "no fields",
			fields:  nil,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireFields(tt.fields...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid lowercase", username: "alice", wantErr: false},
		{name: "valid with underscore", username: "alice_smith", wantErr: false},
		{name: "valid with numbers", username: "alice123", wantErr: false},
		{name: "valid max length", username: "a1234567890123456789012345678901", wantErr: false},
		{name: "empty", username: "", wantErr: true},
		{name: "too short", username: "ab", wantErr: true},
		{name: "too long", username: "a12345678901234567890123456789012", wantErr: true},
		{name: "with space", username: "alice smith", wantErr: true},
		{name: "with dash", username: "alice-smith", wantErr: true},
		{name: "with at sign", username: "alice@home", wantErr: true},
		{name: "cyrillic", username: "алиса", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "alice@example.com", wantErr: false},
		{name: "valid with plus", email: "alice+test@example.com", wantErr: false},
		{name: "valid subdomain", email: "alice@mail.example.co.uk", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "no at sign", email: "alice.example.com", wantErr: true},
		{name: "no domain", email: "alice@", wantErr: true},
		{name: "no tld", email: "alice@example", wantErr: true},
		{name: "with spaces", email: "alice @example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "correct-horse-battery", wantErr: false},
		{name: "exactly min length", password: "12345678", wantErr: false},
		{name: "empty", password: "", wantErr: true},
		{name: "too short", password: "1234567", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
