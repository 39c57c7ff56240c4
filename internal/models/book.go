package models

import "time"

// PlaceholderCover подставляется вместо обложки, когда внешний сервис
// ничего не вернул или ISBN не указан.
const PlaceholderCover = "/static/placeholder.svg"

// Book представляет книгу в списке пользователя. Необязательные поля
// хранятся как nil — это означает NULL в базе данных.
type Book struct {
	ID         int        // Идентификатор книги
	UserID     string     // Идентификатор владельца
	Title      string     // Название (обязательное)
	Author     *string    // Автор
	ISBN       *string    // ISBN
	CoverURL   *string    // Ссылка на обложку
	Rating     *int       // Оценка 1..5
	FinishedOn *time.Time // Дата прочтения
	Notes      *string    // Заметки
	CreatedAt  time.Time  // Дата добавления
}

// Cover возвращает ссылку на обложку книги либо заглушку.
func (b *Book) Cover() string {
	if b.CoverURL != nil && *b.CoverURL != "" {
		return *b.CoverURL
	}
	return PlaceholderCover
}

// BookForm используется для приёма данных из HTML-формы добавления и
// редактирования книги, прежде чем конвертировать их в Book.
// Даты и оценка приходят в виде строк, чтобы их можно было валидировать
// и парсить вручную.
type BookForm struct {
	Title      string `validate:"required,max=500"` // Название книги
	Author     string `validate:"max=500"`          // Автор
	ISBN       string `validate:"max=20"`           // ISBN
	CoverURL   string // Ссылка на обложку, если задана вручную
	Rating     string // Оценка, строка из формы
	FinishedOn string // Дата прочтения в формате 2006-01-02
	Notes      string // Заметки
}
