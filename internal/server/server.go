// Package server связывает хранилище, выдачу токенов, загрузку медиа
// и HTTP обработчики в один работающий сервис.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/videotube/internal/config"
	"github.com/iudanet/videotube/internal/server/handlers"
	"github.com/iudanet/videotube/internal/server/media"
	"github.com/iudanet/videotube/internal/server/middleware"
	"github.com/iudanet/videotube/internal/server/storage"
	"github.com/iudanet/videotube/internal/server/token"
)

const shutdownTimeout = 10 * time.Second

// Server представляет HTTP сервер сервиса
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New создает сервер со всеми маршрутами и middleware
func New(logger *slog.Logger, cfg *config.Config, users storage.UserStorage, uploader media.Uploader, version string) *Server {
	issuer := token.NewIssuer(users, token.Config{
		AccessSecret:  []byte(cfg.AccessTokenSecret),
		RefreshSecret: []byte(cfg.RefreshTokenSecret),
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
		Issuer:        "videotube",
	})

	auth := handlers.NewAuthHandler(logger, users, issuer, uploader,
		cfg.TempDir, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	health := handlers.NewHealthHandler(logger, version)

	requireAuth := middleware.AuthMiddleware(logger, issuer)
	// Более жесткий лимит на endpoints с подбором учетных данных
	authLimit := middleware.RateLimitMiddleware(cfg.AuthRateLimit, cfg.AuthRateLimitWindow, logger)

	mux := http.NewServeMux()
	mux.Handle("POST /api/v1/users/register", authLimit(handlers.Wrap(logger, auth.Register)))
	mux.Handle("POST /api/v1/users/login", authLimit(handlers.Wrap(logger, auth.Login)))
	mux.Handle("POST /api/v1/users/logout", requireAuth(handlers.Wrap(logger, auth.Logout)))
	mux.Handle("POST /api/v1/users/refresh-token", handlers.Wrap(logger, auth.Refresh))
	mux.Handle("GET /api/v1/users/me", requireAuth(handlers.Wrap(logger, auth.CurrentUser)))
	mux.HandleFunc("GET /api/v1/healthz", health.Health)

	// Цепочка middleware: recovery -> ratelimit -> logging -> mux
	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger)(handler)
	handler = middleware.RateLimitMiddleware(cfg.RateLimit, cfg.RateLimitWindow, logger)(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Run запускает сервер и блокируется до отмены контекста
// После отмены выполняется graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	errC := make(chan error, 1)

	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
