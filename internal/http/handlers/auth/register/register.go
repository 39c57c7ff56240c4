// Package register реализует HTTP-обработчики страницы регистрации.
//
// Успешная регистрация сразу устанавливает сессию для нового
// пользователя. Попытка занять существующий email возвращает форму с
// сообщением об ошибке.
package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/sofiakuzmina/book-tracker/internal/http/middlewarectx"
	"github.com/sofiakuzmina/book-tracker/internal/http/render"
	"github.com/sofiakuzmina/book-tracker/internal/lib/sl"
	"github.com/sofiakuzmina/book-tracker/internal/storage"
)

// Request — входные данные формы регистрации.
type Request struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=6,max=72"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, email, password string) (string, error)
}

// Sessions описывает установку сессии для пользователя.
type Sessions interface {
	SetUser(w http.ResponseWriter, r *http.Request, userID string) error
}

// Handler управляет HTTP-запросами страницы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions Sessions
	renderer *render.Renderer
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, sessions Sessions, renderer *render.Renderer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
		renderer: renderer,
		validate: validator.New(),
	}
}

// Page рендерит форму регистрации.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	if middlewarectx.CurrentUser(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"Title": "Регистрация",
		"Error": errorMessage(r.URL.Query().Get("error")),
		"Form": map[string]string{
			"email": r.URL.Query().Get("email"),
		},
	}
	if err := h.renderer.HTML(w, "register.html", data); err != nil {
		h.log.Error("failed to render register page", sl.Err(err))
	}
}

// ServeHTTP обрабатывает отправку формы регистрации.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	req := Request{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		http.Redirect(w, r, formRedirect("invalid_input", req.Email), http.StatusSeeOther)
		return
	}

	userID, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			log.Info("email already taken", slog.String("email", req.Email))
			http.Redirect(w, r, formRedirect("email_taken", req.Email), http.StatusSeeOther)
			return
		}
		log.Error("registration failed", sl.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.sessions.SetUser(w, r, userID); err != nil {
		log.Error("failed to establish session", sl.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	log.Info("user registered", slog.String("user_id", userID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// formRedirect собирает адрес возврата к форме регистрации. Email
// проходит через url.Values, чтобы пережить символы вроде + и & в адресе.
func formRedirect(code, email string) string {
	q := url.Values{"error": {code}, "email": {email}}
	return "/register?" + q.Encode()
}

func errorMessage(code string) string {
	switch code {
	case "email_taken":
		return "Этот email уже зарегистрирован"
	case "invalid_input":
		return "Проверьте email и пароль (минимум 6 символов)"
	case "":
		return ""
	default:
		return "Не удалось зарегистрироваться, попробуйте ещё раз"
	}
}
