// Package config собирает конфигурацию сервера из переменных окружения.
// Конфигурация строится один раз на старте процесса и передается
// по ссылке в зависимые компоненты (никакого ambient-доступа к os.Getenv).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// CloudinaryConfig содержит учетные данные медиа-хостинга
// Все три значения обязательны для работы загрузчика; при пустых
// значениях загрузчик работает в режиме "not configured"
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Configured сообщает, заданы ли учетные данные медиа-хостинга
func (c CloudinaryConfig) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Config содержит конфигурацию сервера
type Config struct {
	Addr               string // адрес HTTP сервера
	DBPath             string // путь к файлу SQLite
	TempDir            string // каталог для временных файлов multipart загрузок
	AccessTokenSecret  string // секрет подписи access token
	RefreshTokenSecret string // секрет подписи refresh token

	Cloudinary CloudinaryConfig

	AccessTokenTTL  time.Duration // время жизни access token
	RefreshTokenTTL time.Duration // время жизни refresh token

	// Лимиты запросов на IP в окно; Auth-вариант жестче и применяется
	// только к login/register
	RateLimit           int
	RateLimitWindow     time.Duration
	AuthRateLimit       int
	AuthRateLimitWindow time.Duration
}

// Load читает конфигурацию из окружения
// ACCESS_TOKEN_SECRET и REFRESH_TOKEN_SECRET обязательны
func Load() (*Config, error) {
	accessSecret := os.Getenv("ACCESS_TOKEN_SECRET")
	if accessSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}

	refreshSecret := os.Getenv("REFRESH_TOKEN_SECRET")
	if refreshSecret == "" {
		return nil, fmt.Errorf("REFRESH_TOKEN_SECRET is required")
	}

	cfg := &Config{
		Addr:               getEnvString("HTTP_ADDR", ":8080"),
		DBPath:             getEnvString("DB_PATH", "./videotube.db"),
		TempDir:            getEnvString("TEMP_DIR", os.TempDir()),
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		AccessTokenTTL:      getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:     getEnvDuration("REFRESH_TOKEN_TTL", 240*time.Hour),
		RateLimit:           getEnvInt("RATE_LIMIT", 100),
		RateLimitWindow:     getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		AuthRateLimit:       getEnvInt("AUTH_RATE_LIMIT", 10),
		AuthRateLimitWindow: getEnvDuration("AUTH_RATE_LIMIT_WINDOW", time.Minute),
	}

	return cfg, nil
}

// getEnvString возвращает значение переменной окружения или default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt возвращает значение переменной окружения как int или default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration возвращает значение переменной окружения как duration или default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
