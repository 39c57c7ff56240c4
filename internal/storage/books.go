package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sofiakuzmina/book-tracker/internal/models"
)

// Ключи сортировки списка книг.
const (
	SortRecent = "recent"
	SortRating = "rating"
	SortTitle  = "title"
)

// NormalizeSort приводит ключ сортировки к одному из поддерживаемых,
// неизвестные значения заменяются на SortRecent.
func NormalizeSort(key string) string {
	switch key {
	case SortRecent, SortRating, SortTitle:
		return key
	default:
		return SortRecent
	}
}

func orderClause(sortKey string) string {
	switch sortKey {
	case SortRating:
		return `ORDER BY rating DESC NULLS LAST, finished_on DESC NULLS LAST`
	case SortTitle:
		return `ORDER BY LOWER(title) ASC`
	default:
		return `ORDER BY finished_on DESC NULLS LAST, id DESC`
	}
}

// CreateBook вставляет новую книгу и возвращает её ID.
func (s *Storage) CreateBook(ctx context.Context, book models.Book) (int, error) {
	const op = "storage.CreateBook"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO books (user_id, title, author, isbn, cover_url,
			      rating, finished_on, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		book.UserID, book.Title, book.Author, book.ISBN, book.CoverURL,
		book.Rating, book.FinishedOn, book.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetBook возвращает книгу по паре (id, user_id). Книга другого
// пользователя неотличима от несуществующей: в обоих случаях
// возвращается ErrBookNotFound.
func (s *Storage) GetBook(ctx context.Context, userID string, bookID int) (*models.Book, error) {
	const op = "storage.GetBook"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, title, author, isbn, cover_url,
			      rating, finished_on, notes, created_at
			  FROM books
			  WHERE id = $1 AND user_id = $2`
	row := s.DB.QueryRowContext(ctx, query, bookID, userID)

	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrBookNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return book, nil
}

// UpdateBook перезаписывает редактируемые поля книги по паре
// (id, user_id) и возвращает количество изменённых строк. Ноль строк
// означает, что запись не существует или принадлежит другому
// пользователю; это не ошибка.
func (s *Storage) UpdateBook(ctx context.Context, book models.Book) (int, error) {
	const op = "storage.UpdateBook"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE books
			  SET title = $1, author = $2, isbn = $3, cover_url = $4,
			      rating = $5, finished_on = $6, notes = $7
			  WHERE id = $8 AND user_id = $9`
	result, err := s.DB.ExecContext(ctx, query,
		book.Title, book.Author, book.ISBN, book.CoverURL,
		book.Rating, book.FinishedOn, book.Notes, book.ID, book.UserID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteBook удаляет книгу по паре (id, user_id) и возвращает
// количество удалённых строк.
func (s *Storage) DeleteBook(ctx context.Context, userID string, bookID int) (int, error) {
	const op = "storage.DeleteBook"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM books WHERE id = $1 AND user_id = $2`
	result, err := s.DB.ExecContext(ctx, query, bookID, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListBooks возвращает все книги пользователя, отсортированные по
// нормализованному ключу сортировки.
func (s *Storage) ListBooks(ctx context.Context, userID, sortKey string) ([]*models.Book, error) {
	const op = "storage.ListBooks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, title, author, isbn, cover_url,
			      rating, finished_on, notes, created_at
			  FROM books
			  WHERE user_id = $1 ` + orderClause(NormalizeSort(sortKey))
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, book)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*models.Book, error) {
	var b models.Book
	var author, isbn, coverURL, notes sql.NullString
	var rating sql.NullInt64
	var finishedOn sql.NullTime

	if err := row.Scan(&b.ID, &b.UserID, &b.Title, &author, &isbn, &coverURL,
		&rating, &finishedOn, &notes, &b.CreatedAt); err != nil {
		return nil, err
	}

	if author.Valid {
		b.Author = &author.String
	}
	if isbn.Valid {
		b.ISBN = &isbn.String
	}
	if coverURL.Valid {
		b.CoverURL = &coverURL.String
	}
	if notes.Valid {
		b.Notes = &notes.String
	}
	if rating.Valid {
		r := int(rating.Int64)
		b.Rating = &r
	}
	if finishedOn.Valid {
		b.FinishedOn = &finishedOn.Time
	}
	return &b, nil
}
