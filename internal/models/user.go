// Package models содержит доменные структуры приложения: пользователя,
// книгу и вспомогательные типы для приёма данных из HTML-форм.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           string    // Уникальный идентификатор пользователя (UUID)
	Email        string    // Электронная почта (уникальная, регистрозависимая)
	PasswordHash string    // Bcrypt-хэш пароля пользователя
	CreatedAt    time.Time // Дата регистрации
}
