// Package edit реализует HTTP-обработчик формы редактирования книги.
// Книга другого пользователя неотличима от несуществующей: в обоих
// случаях возвращается 404.
package edit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/sofiakuzmina/book-tracker/internal/http/middlewarectx"
	"github.com/sofiakuzmina/book-tracker/internal/http/render"
	"github.com/sofiakuzmina/book-tracker/internal/lib/sl"
	"github.com/sofiakuzmina/book-tracker/internal/models"
	"github.com/sofiakuzmina/book-tracker/internal/storage"
)

// Service описывает интерфейс бизнес-логики чтения книги.
type Service interface {
	Get(ctx context.Context, userID string, bookID int) (*models.Book, error)
}

// Handler управляет HTTP-запросами формы редактирования.
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

// ServeHTTP рендерит предзаполненную форму редактирования книги.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.edit"
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

	book, err := h.service.Get(r.Context(), user.ID, bookID)
	if err != nil {
		if errors.Is(err, storage.ErrBookNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error("failed to load book", sl.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"Title":  "Редактирование книги",
		"Action": "/books/" + strconv.Itoa(book.ID) + "/edit",
		"Form":   formFromBook(book),
	}
	if err := h.renderer.HTML(w, "book_form.html", data); err != nil {
		log.Error("failed to render book form", sl.Err(err))
	}
}

// formFromBook конвертирует доменную модель обратно в значения формы.
func formFromBook(book *models.Book) models.BookForm {
	form := models.BookForm{Title: book.Title}
	if book.Author != nil {
		form.Author = *book.Author
	}
	if book.ISBN != nil {
		form.ISBN = *book.ISBN
	}
	if book.CoverURL != nil {
		form.CoverURL = *book.CoverURL
	}
	if book.Rating != nil {
		form.Rating = strconv.Itoa(*book.Rating)
	}
	if book.FinishedOn != nil {
		form.FinishedOn = book.FinishedOn.Format("2006-01-02")
	}
	if book.Notes != nil {
		form.Notes = *book.Notes
	}
	return form
}
