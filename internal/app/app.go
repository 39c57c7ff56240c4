// Package app собирает приложение book-tracker: хранилище, миграции,
// сессии, сервисы и HTTP-сервер с корректным завершением.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/sofiakuzmina/book-tracker/internal/cache"
	"github.com/sofiakuzmina/book-tracker/internal/config"
	"github.com/sofiakuzmina/book-tracker/internal/covers"
	"github.com/sofiakuzmina/book-tracker/internal/http/render"
	"github.com/sofiakuzmina/book-tracker/internal/http/session"
	"github.com/sofiakuzmina/book-tracker/internal/lib/sl"
	"github.com/sofiakuzmina/book-tracker/internal/migrations"
	authservice "github.com/sofiakuzmina/book-tracker/internal/services/auth"
	bookservice "github.com/sofiakuzmina/book-tracker/internal/services/book"
	"github.com/sofiakuzmina/book-tracker/internal/storage"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

// New создает приложение: подключает базу, применяет миграции,
// настраивает сессии, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = storage.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	// Без Redis приложение работает, но каждый поиск обложки уходит
	// во внешний сервис.
	var coverCache covers.Cache
	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		logger.Warn("redis unavailable, cover cache disabled", sl.Err(err))
	} else {
		coverCache = cacheRedis
	}

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(cfg.Session.SecretKey, cfg.Session.CookieName, cfg.Session.TTL)

	coverClient := covers.NewClient(cfg.CoverLookup.BaseURL, cfg.CoverLookup.Timeout)
	coverService := covers.NewService(coverClient, coverCache, cfg.CoverLookup.CacheTTL, logger)
	authService := authservice.NewService(db)
	bookService := bookservice.NewService(db, coverService, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, renderer, sessions, authService, bookService, coverService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
