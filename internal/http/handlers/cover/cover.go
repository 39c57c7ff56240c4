// Package cover реализует JSON-эндпоинт поиска обложки по ISBN.
// Эндпоинт не требует аутентификации и никогда не возвращает ошибку:
// при любом сбое внешнего сервиса подставляется заглушка.
package cover

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/sofiakuzmina/book-tracker/internal/models"
)

// Service описывает интерфейс поиска обложки.
type Service interface {
	FetchCoverURL(ctx context.Context, isbn string) (string, bool)
}

// Response — JSON-ответ эндпоинта.
type Response struct {
	ISBN     string `json:"isbn"`
	CoverURL string `json:"cover_url"`
}

// Handler управляет HTTP-запросами поиска обложки.
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

// ServeHTTP возвращает ссылку на обложку для ISBN из URL либо заглушку.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cover"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	isbn := chi.URLParam(r, "isbn")

	coverURL, ok := h.service.FetchCoverURL(r.Context(), isbn)
	if !ok {
		log.Debug("cover not found", slog.String("isbn", isbn))
		coverURL = models.PlaceholderCover
	}

	render.JSON(w, r, Response{
		ISBN:     isbn,
		CoverURL: coverURL,
	})
}
