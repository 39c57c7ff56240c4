// Package book содержит бизнес-логику для управления списком книг
// пользователя: создание, чтение, обновление, удаление и сортировка.
package book

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/sofiakuzmina/book-tracker/internal/models"
	"github.com/sofiakuzmina/book-tracker/internal/storage"
)

// Repository определяет методы для работы с книгами в хранилище.
type Repository interface {
	// CreateBook добавляет новую книгу и возвращает её ID.
	CreateBook(ctx context.Context, book models.Book) (int, error)
	// GetBook возвращает книгу по паре (id, user_id).
	GetBook(ctx context.Context, userID string, bookID int) (*models.Book, error)
	// UpdateBook перезаписывает книгу и возвращает количество изменённых строк.
	UpdateBook(ctx context.Context, book models.Book) (int, error)
	// DeleteBook удаляет книгу и возвращает количество удалённых строк.
	DeleteBook(ctx context.Context, userID string, bookID int) (int, error)
	// ListBooks возвращает книги пользователя в заданном порядке.
	ListBooks(ctx context.Context, userID, sortKey string) ([]*models.Book, error)
}

// CoverFetcher описывает поиск обложки по ISBN и сброс её кэша.
type CoverFetcher interface {
	FetchCoverURL(ctx context.Context, isbn string) (string, bool)
	InvalidateCover(isbn string)
}

// Service реализует бизнес-логику работы с книгами.
type Service struct {
	repo   Repository
	covers CoverFetcher
	log    *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, covers CoverFetcher, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		covers: covers,
		log:    log,
	}
}

// List возвращает все книги пользователя. Неизвестный ключ сортировки
// заменяется на recent.
func (s *Service) List(ctx context.Context, userID, sortKey string) ([]*models.Book, error) {
	return s.repo.ListBooks(ctx, userID, storage.NormalizeSort(sortKey))
}

// Create создает новую книгу пользователя и возвращает её ID. Пустые
// необязательные поля формы сохраняются как NULL. Если указан ISBN и
// обложка не задана вручную, обложка запрашивается у внешнего сервиса;
// неудачный поиск оставляет её пустой.
func (s *Service) Create(ctx context.Context, userID string, form models.BookForm) (int, error) {
	const op = "services.book.Create"

	book, err := s.fromForm(ctx, userID, form)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return s.repo.CreateBook(ctx, *book)
}

// Get возвращает книгу пользователя для формы редактирования.
// Чужая или несуществующая книга дает storage.ErrBookNotFound.
func (s *Service) Get(ctx context.Context, userID string, bookID int) (*models.Book, error) {
	return s.repo.GetBook(ctx, userID, bookID)
}

// Update полностью перезаписывает редактируемые поля книги и
// возвращает количество изменённых строк. Ноль строк означает, что
// книга не существует или принадлежит другому пользователю; операция
// при этом считается успешной.
func (s *Service) Update(ctx context.Context, userID string, bookID int, form models.BookForm) (int, error) {
	const op = "services.book.Update"

	book, err := s.fromForm(ctx, userID, form)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	book.ID = bookID
	return s.repo.UpdateBook(ctx, *book)
}

// Delete удаляет книгу пользователя и возвращает количество удалённых
// строк. Отсутствующая книга не является ошибкой.
func (s *Service) Delete(ctx context.Context, userID string, bookID int) (int, error) {
	return s.repo.DeleteBook(ctx, userID, bookID)
}

// fromForm конвертирует данные формы в доменную модель: пустые строки
// становятся nil, оценка и дата парсятся, обложка при необходимости
// запрашивается по ISBN.
func (s *Service) fromForm(ctx context.Context, userID string, form models.BookForm) (*models.Book, error) {
	book := &models.Book{
		UserID: userID,
		Title:  form.Title,
	}

	if form.Author != "" {
		book.Author = &form.Author
	}
	if form.ISBN != "" {
		book.ISBN = &form.ISBN
	}
	if form.Notes != "" {
		book.Notes = &form.Notes
	}

	if form.Rating != "" {
		rating, err := strconv.Atoi(form.Rating)
		if err != nil || rating < 1 || rating > 5 {
			return nil, fmt.Errorf("invalid rating: %q", form.Rating)
		}
		book.Rating = &rating
	}

	if form.FinishedOn != "" {
		finishedOn, err := time.Parse("2006-01-02", form.FinishedOn)
		if err != nil {
			return nil, fmt.Errorf("invalid finished date: %w", err)
		}
		book.FinishedOn = &finishedOn
	}

	switch {
	case form.CoverURL != "":
		book.CoverURL = &form.CoverURL
		// Ручная ссылка перекрывает найденную по ISBN, кэш для него
		// больше не актуален.
		if form.ISBN != "" {
			s.covers.InvalidateCover(form.ISBN)
		}
	case form.ISBN != "":
		if coverURL, ok := s.covers.FetchCoverURL(ctx, form.ISBN); ok {
			book.CoverURL = &coverURL
		}
	}

	return book, nil
}
