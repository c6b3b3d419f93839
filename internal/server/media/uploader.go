// Package media загружает локальные файлы на внешний медиа-хостинг.
// Загрузчик владеет переданным ему временным файлом: файл удаляется
// и при успехе, и при ошибке загрузки.
package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/iudanet/videotube/internal/config"
)

// ErrNotConfigured indicates that media-host credentials are missing
var ErrNotConfigured = errors.New("media uploader is not configured")

// Result представляет результат успешной загрузки
type Result struct {
	URL string // durable URL загруженного файла
}

// Uploader defines interface for media upload
type Uploader interface {
	// Upload sends the file at localPath to the media host
	// The local file is removed on both success and failure paths
	Upload(ctx context.Context, localPath string) (*Result, error)
}

// NewUploader возвращает Cloudinary загрузчик либо заглушку,
// если учетные данные не заданы
func NewUploader(cfg config.CloudinaryConfig, logger *slog.Logger) (Uploader, error) {
	if !cfg.Configured() {
		logger.Warn("cloudinary credentials are not set, media upload disabled")
		return &disabledUploader{}, nil
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary client: %w", err)
	}

	return &cloudinaryUploader{cld: cld, logger: logger}, nil
}

// cloudinaryUploader загружает файлы в Cloudinary
type cloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	logger *slog.Logger
}

// Upload загружает файл по локальному пути в Cloudinary
func (u *cloudinaryUploader) Upload(ctx context.Context, localPath string) (*Result, error) {
	// Временный файл удаляется в любом случае
	defer removeLocal(localPath, u.logger)

	resp, err := u.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		ResourceType: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}

	if resp.SecureURL == "" {
		return nil, fmt.Errorf("cloudinary upload returned no URL: %s", resp.Error.Message)
	}

	u.logger.Info("file uploaded",
		slog.String("public_id", resp.PublicID),
		slog.Int("bytes", resp.Bytes))

	return &Result{URL: resp.SecureURL}, nil
}

// disabledUploader возвращает типизированную ошибку вместо паники,
// когда медиа-хостинг не сконфигурирован
type disabledUploader struct{}

func (u *disabledUploader) Upload(_ context.Context, localPath string) (*Result, error) {
	_ = os.Remove(localPath)
	return nil, ErrNotConfigured
}

// removeLocal удаляет локальный временный файл
func removeLocal(path string, logger *slog.Logger) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to remove temp file", slog.String("path", path), slog.Any("error", err))
	}
}
