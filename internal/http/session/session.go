// Package session управляет cookie-сессиями на основе gorilla/sessions.
// Сессия хранит только идентификатор пользователя; сама запись
// пользователя заново читается из базы на каждом запросе.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const userIDKey = "user_id"

// Manager оборачивает CookieStore и скрывает работу с session.Values.
type Manager struct {
	store *sessions.CookieStore
	name  string
}

// NewManager создаёт менеджер сессий с подписанными cookie.
func NewManager(secretKey, cookieName string, ttl time.Duration) *Manager {
	store := sessions.NewCookieStore([]byte(secretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{
		store: store,
		name:  cookieName,
	}
}

// SetUser устанавливает сессию для пользователя. Вызывается после
// успешного входа или регистрации.
func (m *Manager) SetUser(w http.ResponseWriter, r *http.Request, userID string) error {
	const op = "session.SetUser"

	session, _ := m.store.Get(r, m.name)
	session.Values[userIDKey] = userID
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear уничтожает текущую сессию. Отсутствие сессии не является
// ошибкой.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	const op = "session.Clear"

	session, _ := m.store.Get(r, m.name)
	session.Options.MaxAge = -1
	delete(session.Values, userIDKey)
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UserID возвращает идентификатор пользователя из сессии запроса.
// Второе возвращаемое значение false означает анонимный запрос,
// в том числе при повреждённой или просроченной cookie.
func (m *Manager) UserID(r *http.Request) (string, bool) {
	session, err := m.store.Get(r, m.name)
	if err != nil {
		return "", false
	}
	userID, ok := session.Values[userIDKey].(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
