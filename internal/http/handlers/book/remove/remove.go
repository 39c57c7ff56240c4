// Package remove реализует HTTP-обработчик удаления книги. Удаление
// отсутствующей или чужой книги не затрагивает ни одной строки и
// завершается как успех.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/sofiakuzmina/book-tracker/internal/http/middlewarectx"
	"github.com/sofiakuzmina/book-tracker/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики удаления книги.
type Service interface {
	Delete(ctx context.Context, userID string, bookID int) (int, error)
}

// Handler управляет HTTP-запросами удаления книги.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP удаляет книгу и перенаправляет к списку.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user := middlewarectx.CurrentUser(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	bookID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	rows, err := h.service.Delete(r.Context(), user.ID, bookID)
	if err != nil {
		log.Error("failed to delete book", sl.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	log.Info("book deleted",
		slog.Int("book_id", bookID),
		slog.String("user_id", user.ID),
		slog.Int("rows_affected", rows),
	)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
