// Package middlewarectx содержит HTTP middleware аутентификации.
//
// SessionMiddleware восстанавливает пользователя по cookie-сессии и
// кладёт его запись в контекст запроса одним композируемым шагом до
// диспетчеризации обработчиков. RequireAuth закрывает защищённые
// маршруты, перенаправляя анонимные запросы на страницу входа.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/sofiakuzmina/book-tracker/internal/lib/sl"
	"github.com/sofiakuzmina/book-tracker/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для записи пользователя в контексте.
const User Key = "user"

// Sessions описывает чтение идентификатора пользователя из сессии запроса.
type Sessions interface {
	UserID(r *http.Request) (string, bool)
}

// UserProvider описывает восстановление пользователя по идентификатору.
type UserProvider interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// SessionMiddleware возвращает middleware, который разрешает сессию
// запроса в минимальную запись пользователя и сохраняет её в контексте.
// Нерешаемый идентификатор (удалённый пользователь, битая cookie)
// молча трактуется как анонимный запрос.
func SessionMiddleware(sessions Sessions, users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			userID, ok := sessions.UserID(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if err != nil {
				log.Debug("session user not resolved",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), User, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth перенаправляет анонимные запросы на страницу входа.
// Чистый гейт без побочных эффектов.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser возвращает пользователя из контекста запроса либо nil
// для анонимного запроса.
func CurrentUser(ctx context.Context) *models.User {
	user, ok := ctx.Value(User).(*models.User)
	if !ok {
		return nil
	}
	return user
}
