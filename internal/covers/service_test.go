package covers

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFetcher реализует интерфейс covers.Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchCoverURL(ctx context.Context, isbn string) (string, bool) {
	args := m.Called(ctx, isbn)
	return args.String(0), args.Bool(1)
}

// MockCache реализует интерфейс covers.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if args.Bool(0) {
		*(result.(*string)) = "cached.jpg"
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestService_FetchCoverURL(t *testing.T) {
	tests := []struct {
		name      string
		isbn      string
		setupMock func(*MockFetcher, *MockCache)
		wantURL   string
		wantOK    bool
	}{
		{
			name: "значение из кеша возвращается без внешнего вызова",
			isbn: "9780000000001",
			setupMock: func(_ *MockFetcher, cache *MockCache) {
				cache.On("Get", "cover:9780000000001", mock.Anything).Return(true, nil)
			},
			wantURL: "cached.jpg",
			wantOK:  true,
		},
		{
			name: "промах кеша, успешный поиск кешируется",
			isbn: "9780000000002",
			setupMock: func(fetcher *MockFetcher, cache *MockCache) {
				cache.On("Get", "cover:9780000000002", mock.Anything).Return(false, nil)
				fetcher.On("FetchCoverURL", mock.Anything, "9780000000002").Return("m.jpg", true)
				cache.On("Set", "cover:9780000000002", "m.jpg", mock.Anything).Return(nil)
			},
			wantURL: "m.jpg",
			wantOK:  true,
		},
		{
			name: "неудачный поиск не кешируется",
			isbn: "9780000000003",
			setupMock: func(fetcher *MockFetcher, cache *MockCache) {
				cache.On("Get", "cover:9780000000003", mock.Anything).Return(false, nil)
				fetcher.On("FetchCoverURL", mock.Anything, "9780000000003").Return("", false)
			},
			wantOK: false,
		},
		{
			name: "ошибка кеша не мешает поиску",
			isbn: "9780000000004",
			setupMock: func(fetcher *MockFetcher, cache *MockCache) {
				cache.On("Get", "cover:9780000000004", mock.Anything).
					Return(false, errors.New("redis down"))
				fetcher.On("FetchCoverURL", mock.Anything, "9780000000004").Return("m.jpg", true)
				cache.On("Set", "cover:9780000000004", "m.jpg", mock.Anything).
					Return(errors.New("redis down"))
			},
			wantURL: "m.jpg",
			wantOK:  true,
		},
		{
			name:      "пустой ISBN не трогает ни кеш, ни внешний сервис",
			isbn:      "",
			setupMock: func(_ *MockFetcher, _ *MockCache) {},
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := new(MockFetcher)
			cache := new(MockCache)
			tt.setupMock(fetcher, cache)
			service := NewService(fetcher, cache, time.Hour, newTestLogger())

			gotURL, gotOK := service.FetchCoverURL(context.Background(), tt.isbn)

			assert.Equal(t, tt.wantOK, gotOK)
			assert.Equal(t, tt.wantURL, gotURL)
			fetcher.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestService_InvalidateCover(t *testing.T) {
	t.Run("запись удаляется из кеша", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Invalidate", "cover:9780000000006").Return(nil)

		service := NewService(new(MockFetcher), cache, time.Hour, newTestLogger())
		service.InvalidateCover("9780000000006")

		cache.AssertExpectations(t)
	})

	t.Run("ошибка кеша игнорируется", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Invalidate", "cover:9780000000007").Return(errors.New("redis down"))

		service := NewService(new(MockFetcher), cache, time.Hour, newTestLogger())
		service.InvalidateCover("9780000000007")

		cache.AssertExpectations(t)
	})

	t.Run("пустой ISBN и отсутствующий кеш безопасны", func(t *testing.T) {
		cache := new(MockCache)

		NewService(new(MockFetcher), cache, time.Hour, newTestLogger()).InvalidateCover("")
		NewService(new(MockFetcher), nil, time.Hour, newTestLogger()).InvalidateCover("9780000000008")

		cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})
}

// Сервис без кеша ходит напрямую во внешний сервис.
func TestService_FetchCoverURL_NoCache(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchCoverURL", mock.Anything, "9780000000005").Return("m.jpg", true)

	service := NewService(fetcher, nil, time.Hour, newTestLogger())
	gotURL, gotOK := service.FetchCoverURL(context.Background(), "9780000000005")

	assert.True(t, gotOK)
	assert.Equal(t, "m.jpg", gotURL)
}
