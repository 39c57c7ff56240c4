// Package login реализует HTTP-обработчики страницы входа: рендер
// формы и проверку учётных данных с установкой сессии.
//
// Неизвестный email и неверный пароль дают один и тот же редирект с
// общим сообщением, чтобы исключить перебор учётных записей.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/sofiakuzmina/book-tracker/internal/http/middlewarectx"
	"github.com/sofiakuzmina/book-tracker/internal/http/render"
	"github.com/sofiakuzmina/book-tracker/internal/lib/sl"
	"github.com/sofiakuzmina/book-tracker/internal/models"
	authservice "github.com/sofiakuzmina/book-tracker/internal/services/auth"
)

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// Sessions описывает установку сессии для пользователя.
type Sessions interface {
	SetUser(w http.ResponseWriter, r *http.Request, userID string) error
}

// Handler управляет HTTP-запросами страницы входа.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions Sessions
	renderer *render.Renderer
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, sessions Sessions, renderer *render.Renderer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
		renderer: renderer,
	}
}

// Page рендерит форму входа. Авторизованный пользователь сразу
// перенаправляется к списку книг.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	if middlewarectx.CurrentUser(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"Title": "Вход",
		"Error": errorMessage(r.URL.Query().Get("error")),
		"Form": map[string]string{
			"email": r.URL.Query().Get("email"),
		},
	}
	if err := h.renderer.HTML(w, "login.html", data); err != nil {
		h.log.Error("failed to render login page", sl.Err(err))
	}
}

// ServeHTTP обрабатывает отправку формы входа.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	rawPassword := r.FormValue("password")
	if email == "" || rawPassword == "" {
		http.Redirect(w, r, formRedirect("empty_fields", email), http.StatusSeeOther)
		return
	}

	user, err := h.service.Login(r.Context(), email, rawPassword)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			log.Info("login rejected", slog.String("email", email))
			http.Redirect(w, r, formRedirect("invalid_credentials", email), http.StatusSeeOther)
			return
		}
		log.Error("login failed", sl.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.sessions.SetUser(w, r, user.ID); err != nil {
		log.Error("failed to establish session", sl.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// formRedirect собирает адрес возврата к форме входа. Email проходит
// через url.Values, чтобы пережить символы вроде + и & в адресе.
func formRedirect(code, email string) string {
	q := url.Values{"error": {code}, "email": {email}}
	return "/login?" + q.Encode()
}

func errorMessage(code string) string {
	switch code {
	case "invalid_credentials":
		return "Неверный email или пароль"
	case "empty_fields":
		return "Заполните все поля"
	case "":
		return ""
	default:
		return "Не удалось войти, попробуйте ещё раз"
	}
}
