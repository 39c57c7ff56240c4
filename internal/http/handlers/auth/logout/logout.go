// Package logout реализует HTTP-обработчик выхода из системы.
// Сессия уничтожается безусловно: выход без активной сессии тоже
// считается успешным.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/sofiakuzmina/book-tracker/internal/lib/sl"
)

// Sessions описывает уничтожение текущей сессии.
type Sessions interface {
	Clear(w http.ResponseWriter, r *http.Request) error
}

// Handler управляет HTTP-запросами выхода.
type Handler struct {
	log      *slog.Logger
	sessions Sessions
}

// New создает новый Handler.
func New(log *slog.Logger, sessions Sessions) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
	}
}

// ServeHTTP уничтожает сессию и перенаправляет на страницу входа.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	if err := h.sessions.Clear(w, r); err != nil {
		h.log.Error("failed to clear session",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
