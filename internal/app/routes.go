package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sofiakuzmina/book-tracker/internal/covers"
	loginhandler "github.com/sofiakuzmina/book-tracker/internal/http/handlers/auth/login"
	logouthandler "github.com/sofiakuzmina/book-tracker/internal/http/handlers/auth/logout"
	registerhandler "github.com/sofiakuzmina/book-tracker/internal/http/handlers/auth/register"
	bookcreate "github.com/sofiakuzmina/book-tracker/internal/http/handlers/book/create"
	bookedit "github.com/sofiakuzmina/book-tracker/internal/http/handlers/book/edit"
	booklist "github.com/sofiakuzmina/book-tracker/internal/http/handlers/book/list"
	bookremove "github.com/sofiakuzmina/book-tracker/internal/http/handlers/book/remove"
	bookupdate "github.com/sofiakuzmina/book-tracker/internal/http/handlers/book/update"
	coverhandler "github.com/sofiakuzmina/book-tracker/internal/http/handlers/cover"
	"github.com/sofiakuzmina/book-tracker/internal/http/middlewarectx"
	"github.com/sofiakuzmina/book-tracker/internal/http/render"
	"github.com/sofiakuzmina/book-tracker/internal/http/session"
	authservice "github.com/sofiakuzmina/book-tracker/internal/services/auth"
	bookservice "github.com/sofiakuzmina/book-tracker/internal/services/book"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	renderer *render.Renderer,
	sessions *session.Manager,
	authService *authservice.Service,
	bookService *bookservice.Service,
	coverService *covers.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(middlewarectx.SessionMiddleware(sessions, authService, logger))

	login := loginhandler.New(logger, authService, sessions, renderer)
	register := registerhandler.New(logger, authService, sessions, renderer)

	// Открытые конечные точки
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Get("/login", login.Page)
		r.Post("/login", login.ServeHTTP)
		r.Get("/register", register.Page)
		r.Post("/register", register.ServeHTTP)
	})
	r.Get("/api/cover/{isbn}", coverhandler.New(logger, coverService).ServeHTTP)

	// Группа с обязательной аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireAuth)
		r.Get("/", booklist.New(logger, bookService, renderer).ServeHTTP)
		r.Get("/books/new", bookcreate.New(logger, bookService, renderer).Page)
		r.Post("/books", bookcreate.New(logger, bookService, renderer).ServeHTTP)
		r.Get("/books/{id}/edit", bookedit.New(logger, bookService, renderer).ServeHTTP)
		r.Post("/books/{id}/edit", bookupdate.New(logger, bookService, renderer).ServeHTTP)
		r.Post("/books/{id}/delete", bookremove.New(logger, bookService).ServeHTTP)
		r.Post("/logout", logouthandler.New(logger, sessions).ServeHTTP)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("./web/static"))))
	r.Handle("/metrics", promhttp.Handler())
}
