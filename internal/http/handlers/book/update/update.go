// Package update реализует HTTP-обработчик сохранения отредактированной
// книги: полная перезапись редактируемых полей. Запись, не прошедшая
// фильтр владельца, молча не изменяется (ноль затронутых строк), это
// не ошибка.
package update

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/sofiakuzmina/book-tracker/internal/http/middlewarectx"
	"github.com/sofiakuzmina/book-tracker/internal/http/render"
	"github.com/sofiakuzmina/book-tracker/internal/lib/sl"
	"github.com/sofiakuzmina/book-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики обновления книги.
type Service interface {
	Update(ctx context.Context, userID string, bookID int, form models.BookForm) (int, error)
}

// Handler управляет HTTP-запросами обновления книги.
type Handler struct {
	log      *slog.Logger
	service  Service
	renderer *render.Renderer
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, renderer *render.Renderer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		renderer: renderer,
		validate: validator.New(),
	}
}

// ServeHTTP перезаписывает книгу данными формы и перенаправляет к списку.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.update"
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

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	form := formFromRequest(r)
	if err := h.validate.Struct(form); err != nil {
		log.Info("validation failed", sl.Err(err))
		h.renderForm(w, bookID, form, "Проверьте поля формы: название обязательно")
		return
	}

	rows, err := h.service.Update(r.Context(), user.ID, bookID, form)
	if err != nil {
		log.Error("failed to update book", sl.Err(err))
		h.renderForm(w, bookID, form, "Не удалось сохранить книгу")
		return
	}

	log.Info("book updated",
		slog.Int("book_id", bookID),
		slog.String("user_id", user.ID),
		slog.Int("rows_affected", rows),
	)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, bookID int, form models.BookForm, errMsg string) {
	data := map[string]any{
		"Title":  "Редактирование книги",
		"Action": "/books/" + strconv.Itoa(bookID) + "/edit",
		"Form":   form,
		"Error":  errMsg,
	}
	if err := h.renderer.HTML(w, "book_form.html", data); err != nil {
		h.log.Error("failed to render book form", sl.Err(err))
	}
}

func formFromRequest(r *http.Request) models.BookForm {
	return models.BookForm{
		Title:      r.FormValue("title"),
		Author:     r.FormValue("author"),
		ISBN:       r.FormValue("isbn"),
		CoverURL:   r.FormValue("cover_url"),
		Rating:     r.FormValue("rating"),
		FinishedOn: r.FormValue("finished_on"),
		Notes:      r.FormValue("notes"),
	}
}
