package book

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sofiakuzmina/book-tracker/internal/models"
)

// MockRepository реализует интерфейс book.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateBook(ctx context.Context, book models.Book) (int, error) {
	args := m.Called(ctx, book)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetBook(ctx context.Context, userID string, bookID int) (*models.Book, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockRepository) UpdateBook(ctx context.Context, book models.Book) (int, error) {
	args := m.Called(ctx, book)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) DeleteBook(ctx context.Context, userID string, bookID int) (int, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListBooks(ctx context.Context, userID, sortKey string) ([]*models.Book, error) {
	args := m.Called(ctx, userID, sortKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Book), args.Error(1)
}

// MockCoverFetcher реализует интерфейс book.CoverFetcher
type MockCoverFetcher struct {
	mock.Mock
}

func (m *MockCoverFetcher) FetchCoverURL(ctx context.Context, isbn string) (string, bool) {
	args := m.Called(ctx, isbn)
	return args.String(0), args.Bool(1)
}

func (m *MockCoverFetcher) InvalidateCover(isbn string) {
	m.Called(isbn)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name      string
		form      models.BookForm
		setupMock func(*MockRepository, *MockCoverFetcher)
		wantErr   bool
		check     func(*testing.T, models.Book)
	}{
		{
			name: "пустые необязательные поля сохраняются как nil",
			form: models.BookForm{Title: "Чистая книга"},
			setupMock: func(repo *MockRepository, _ *MockCoverFetcher) {
				repo.On("CreateBook", mock.Anything, mock.AnythingOfType("models.Book")).Return(1, nil)
			},
			check: func(t *testing.T, book models.Book) {
				assert.Equal(t, "Чистая книга", book.Title)
				assert.Nil(t, book.Author)
				assert.Nil(t, book.ISBN)
				assert.Nil(t, book.CoverURL)
				assert.Nil(t, book.Rating)
				assert.Nil(t, book.FinishedOn)
				assert.Nil(t, book.Notes)
			},
		},
		{
			name: "все поля заполнены",
			form: models.BookForm{
				Title:      "Полная книга",
				Author:     "Автор",
				ISBN:       "9780000000001",
				CoverURL:   "https://example.com/cover.jpg",
				Rating:     "4",
				FinishedOn: "2024-03-15",
				Notes:      "заметка",
			},
			setupMock: func(repo *MockRepository, covers *MockCoverFetcher) {
				repo.On("CreateBook", mock.Anything, mock.AnythingOfType("models.Book")).Return(2, nil)
				// Ручная обложка при заданном ISBN сбрасывает его кэш
				covers.On("InvalidateCover", "9780000000001").Return()
			},
			check: func(t *testing.T, book models.Book) {
				require.NotNil(t, book.Rating)
				assert.Equal(t, 4, *book.Rating)
				require.NotNil(t, book.FinishedOn)
				assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *book.FinishedOn)
				require.NotNil(t, book.CoverURL)
				assert.Equal(t, "https://example.com/cover.jpg", *book.CoverURL)
			},
		},
		{
			name: "ручная обложка без ISBN не трогает кэш",
			form: models.BookForm{Title: "Книга", CoverURL: "https://example.com/manual.jpg"},
			setupMock: func(repo *MockRepository, _ *MockCoverFetcher) {
				repo.On("CreateBook", mock.Anything, mock.AnythingOfType("models.Book")).Return(5, nil)
			},
			check: func(t *testing.T, book models.Book) {
				require.NotNil(t, book.CoverURL)
				assert.Equal(t, "https://example.com/manual.jpg", *book.CoverURL)
			},
		},
		{
			name: "обложка запрашивается по ISBN, если не задана вручную",
			form: models.BookForm{Title: "Книга с ISBN", ISBN: "9780000000002"},
			setupMock: func(repo *MockRepository, covers *MockCoverFetcher) {
				covers.On("FetchCoverURL", mock.Anything, "9780000000002").
					Return("https://covers.openlibrary.org/b/id/1-M.jpg", true)
				repo.On("CreateBook", mock.Anything, mock.AnythingOfType("models.Book")).Return(3, nil)
			},
			check: func(t *testing.T, book models.Book) {
				require.NotNil(t, book.CoverURL)
				assert.Equal(t, "https://covers.openlibrary.org/b/id/1-M.jpg", *book.CoverURL)
			},
		},
		{
			name: "неудачный поиск обложки оставляет её пустой",
			form: models.BookForm{Title: "Книга без обложки", ISBN: "9780000000003"},
			setupMock: func(repo *MockRepository, covers *MockCoverFetcher) {
				covers.On("FetchCoverURL", mock.Anything, "9780000000003").Return("", false)
				repo.On("CreateBook", mock.Anything, mock.AnythingOfType("models.Book")).Return(4, nil)
			},
			check: func(t *testing.T, book models.Book) {
				assert.Nil(t, book.CoverURL)
			},
		},
		{
			name:      "некорректная оценка",
			form:      models.BookForm{Title: "Книга", Rating: "11"},
			setupMock: func(_ *MockRepository, _ *MockCoverFetcher) {},
			wantErr:   true,
		},
		{
			name:      "некорректная дата",
			form:      models.BookForm{Title: "Книга", FinishedOn: "15.03.2024"},
			setupMock: func(_ *MockRepository, _ *MockCoverFetcher) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			covers := new(MockCoverFetcher)
			tt.setupMock(repo, covers)
			service := NewService(repo, covers, newTestLogger())

			var created models.Book
			for _, call := range repo.ExpectedCalls {
				if call.Method == "CreateBook" {
					call.Run(func(args mock.Arguments) {
						created = args.Get(1).(models.Book)
					})
				}
			}

			_, err := service.Create(context.Background(), "user-1", tt.form)

			if tt.wantErr {
				require.Error(t, err)
				repo.AssertNotCalled(t, "CreateBook", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-1", created.UserID)
			if tt.check != nil {
				tt.check(t, created)
			}
			repo.AssertExpectations(t)
			covers.AssertExpectations(t)
		})
	}
}

func TestList_NormalizesSortKey(t *testing.T) {
	tests := []struct {
		name     string
		sortKey  string
		wantSort string
	}{
		{"известный ключ rating", "rating", "rating"},
		{"известный ключ title", "title", "title"},
		{"неизвестный ключ заменяется на recent", "garbage", "recent"},
		{"пустой ключ заменяется на recent", "", "recent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("ListBooks", mock.Anything, "user-1", tt.wantSort).
				Return([]*models.Book{}, nil)
			service := NewService(repo, new(MockCoverFetcher), newTestLogger())

			_, err := service.List(context.Background(), "user-1", tt.sortKey)

			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestUpdate_PassesOwnershipFilter(t *testing.T) {
	repo := new(MockRepository)
	repo.On("UpdateBook", mock.Anything, mock.MatchedBy(func(b models.Book) bool {
		return b.ID == 42 && b.UserID == "user-1"
	})).Return(0, nil)

	service := NewService(repo, new(MockCoverFetcher), newTestLogger())
	rows, err := service.Update(context.Background(), "user-1", 42, models.BookForm{Title: "Чужая книга"})

	// Ноль затронутых строк — не ошибка
	require.NoError(t, err)
	assert.Equal(t, 0, rows)
	repo.AssertExpectations(t)
}

func TestDelete_MissingBookIsNoop(t *testing.T) {
	repo := new(MockRepository)
	repo.On("DeleteBook", mock.Anything, "user-1", 999).Return(0, nil)

	service := NewService(repo, new(MockCoverFetcher), newTestLogger())
	rows, err := service.Delete(context.Background(), "user-1", 999)

	require.NoError(t, err)
	assert.Equal(t, 0, rows)
}
