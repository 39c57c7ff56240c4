// Package create реализует HTTP-обработчики добавления книги: пустую
// форму и создание записи. Название обязательно, остальные поля формы
// необязательны и при пустом значении сохраняются как NULL.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/sofiakuzmina/book-tracker/internal/http/middlewarectx"
	"github.com/sofiakuzmina/book-tracker/internal/http/render"
	"github.com/sofiakuzmina/book-tracker/internal/lib/sl"
	"github.com/sofiakuzmina/book-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики создания книги.
type Service interface {
	Create(ctx context.Context, userID string, form models.BookForm) (int, error)
}

// Handler управляет HTTP-запросами добавления книги.
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

// Page рендерит пустую форму добавления книги.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title":  "Новая книга",
		"Action": "/books",
		"Form":   models.BookForm{},
	}
	if err := h.renderer.HTML(w, "book_form.html", data); err != nil {
		h.log.Error("failed to render book form", sl.Err(err))
	}
}

// ServeHTTP создает книгу из данных формы и перенаправляет к списку.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user := middlewarectx.CurrentUser(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
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
		h.renderForm(w, form, "Проверьте поля формы: название обязательно")
		return
	}

	id, err := h.service.Create(r.Context(), user.ID, form)
	if err != nil {
		log.Error("failed to create book", sl.Err(err))
		h.renderForm(w, form, "Не удалось сохранить книгу")
		return
	}

	log.Info("book created", slog.Int("book_id", id), slog.String("user_id", user.ID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, form models.BookForm, errMsg string) {
	data := map[string]any{
		"Title":  "Новая книга",
		"Action": "/books",
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
