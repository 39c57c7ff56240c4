// Package list реализует HTTP-обработчик списка книг пользователя
// с сортировкой через query-параметр sort.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/sofiakuzmina/book-tracker/internal/http/middlewarectx"
	"github.com/sofiakuzmina/book-tracker/internal/http/render"
	"github.com/sofiakuzmina/book-tracker/internal/lib/sl"
	"github.com/sofiakuzmina/book-tracker/internal/models"
	"github.com/sofiakuzmina/book-tracker/internal/storage"
)

// Service описывает интерфейс бизнес-логики списка книг.
type Service interface {
	List(ctx context.Context, userID, sortKey string) ([]*models.Book, error)
}

// Handler управляет HTTP-запросами списка книг.
type Handler struct {
	log      *slog.Logger
	service  Service
	renderer *render.Renderer
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, renderer *render.Renderer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		renderer: renderer,
	}
}

// ServeHTTP рендерит список книг текущего пользователя.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user := middlewarectx.CurrentUser(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sortKey := storage.NormalizeSort(r.URL.Query().Get("sort"))
	books, err := h.service.List(r.Context(), user.ID, sortKey)
	if err != nil {
		log.Error("failed to list books", sl.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"User":  user,
		"Books": books,
		"Sort":  sortKey,
	}
	if err := h.renderer.HTML(w, "books.html", data); err != nil {
		log.Error("failed to render book list", sl.Err(err))
	}
}
