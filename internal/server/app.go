// Package server собирает все компоненты сервера и управляет его
// жизненным циклом: хранилище, ядро авторизации, HTTP-маршруты,
// запуск и graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/leeroy/internal/server/auth"
	"github.com/iudanet/leeroy/internal/server/books"
	"github.com/iudanet/leeroy/internal/server/config"
	"github.com/iudanet/leeroy/internal/server/handlers"
	"github.com/iudanet/leeroy/internal/server/middleware"
	"github.com/iudanet/leeroy/internal/server/storage/sqlite"
	"github.com/iudanet/leeroy/internal/server/token"
	"github.com/iudanet/leeroy/internal/server/users"
)

// shutdownTimeout — время на завершение активных запросов при остановке
const shutdownTimeout = 10 * time.Second

// App — собранное приложение сервера
type App struct {
	logger  *slog.Logger
	cfg     *config.Config
	storage *sqlite.Storage
	server  *http.Server
}

// New собирает приложение: открывает хранилище, выполняет миграции,
// создает администратора по умолчанию и строит дерево маршрутов.
func New(ctx context.Context, logger *slog.Logger, cfg *config.Config, version string) (*App, error) {
	store, err := sqlite.New(ctx, cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	codec := token.New([]byte(cfg.Auth.JWTSignatureSecret))

	usersService := users.NewService(logger, store)
	booksService := books.NewService(logger, store, usersService)
	authService := auth.NewService(logger, codec, store, store,
		cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL())

	if err := usersService.EnsureDefaultAdmin(ctx, users.BootstrapParams{
		Email:     cfg.Bootstrap.AdminEmail,
		Password:  cfg.Bootstrap.AdminPassword,
		Firstname: cfg.Bootstrap.AdminFirstname,
		Surname:   cfg.Bootstrap.AdminSurname,
	}); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to ensure default admin: %w", err)
	}

	authHandler := handlers.NewAuthHandler(logger, authService)
	usersHandler := handlers.NewUsersHandler(logger, usersService)
	booksHandler := handlers.NewBooksHandler(logger, booksService)
	healthHandler := handlers.NewHealthHandler(logger, version)

	requireAuth := middleware.AuthMiddleware(logger, authService)

	mux := http.NewServeMux()

	// Открытая зона: авторизация, ротация и логаут сами разбирают токены
	mux.HandleFunc("POST /authorize", authHandler.Authorize)
	mux.HandleFunc("POST /refresh", authHandler.Refresh)
	mux.HandleFunc("DELETE /logout", authHandler.Logout)
	mux.HandleFunc("GET /healthz", healthHandler.Health)

	// Авторизованная зона
	mux.Handle("POST /users", requireAuth(http.HandlerFunc(usersHandler.Create)))
	mux.Handle("GET /users/{user_id}", requireAuth(http.HandlerFunc(usersHandler.Get)))
	mux.Handle("PATCH /users/{user_id}", requireAuth(http.HandlerFunc(usersHandler.Update)))
	mux.Handle("DELETE /users/{user_id}", requireAuth(http.HandlerFunc(usersHandler.Delete)))

	mux.Handle("POST /books", requireAuth(http.HandlerFunc(booksHandler.Create)))
	mux.Handle("GET /books", requireAuth(http.HandlerFunc(booksHandler.List)))
	mux.Handle("GET /books/{book_id}", requireAuth(http.HandlerFunc(booksHandler.Get)))
	mux.Handle("DELETE /books/{book_id}", requireAuth(http.HandlerFunc(booksHandler.Delete)))

	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(logger, []string{"/healthz"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	server := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		logger:  logger,
		cfg:     cfg,
		storage: store,
		server:  server,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста,
// затем останавливает сервер и закрывает хранилище.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("server started", slog.String("address", a.cfg.HTTPServer.Address))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.storage.Close()
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.storage.Close()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := a.storage.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}

	a.logger.Info("server stopped")

	return nil
}
