package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
}

func TestLoad_RequiresSecrets(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_SECRET")

	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_TOKEN_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredSecrets(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "./videotube.db", cfg.DBPath)
	assert.Equal(t, "access-secret", cfg.AccessTokenSecret)
	assert.Equal(t, "refresh-secret", cfg.RefreshTokenSecret)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 240*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, 10, cfg.AuthRateLimit)
	assert.False(t, cfg.Cloudinary.Configured())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_PATH", "/data/app.db")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("RATE_LIMIT", "42")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/data/app.db", cfg.DBPath)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 42, cfg.RateLimit)
	assert.True(t, cfg.Cloudinary.Configured())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("RATE_LIMIT", "not-a-number")
	t.Setenv("ACCESS_TOKEN_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
}

func TestCloudinaryConfig_Configured(t *testing.T) {
	tests := []struct {
		name string
		cfg  CloudinaryConfig
		want bool
	}{
		{name: "all set", cfg: CloudinaryConfig{CloudName: "demo", APIKey: "key", APISecret: "secret"}, want: true},
		{name: "empty", cfg: CloudinaryConfig{}, want: false},
		{name: "missing secret", cfg: CloudinaryConfig{CloudName: "demo", APIKey: "key"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Configured())
		})
	}
}
