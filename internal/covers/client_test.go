package covers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_FetchCoverURL(t *testing.T) {
	tests := []struct {
		name     string
		isbn     string
		response string
		status   int
		wantURL  string
		wantOK   bool
	}{
		{
			name:     "предпочитается среднее разрешение",
			isbn:     "9780000000001",
			response: `{"ISBN:9780000000001":{"cover":{"small":"s.jpg","medium":"m.jpg","large":"l.jpg"}}}`,
			status:   http.StatusOK,
			wantURL:  "m.jpg",
			wantOK:   true,
		},
		{
			name:     "fallback на большое разрешение",
			isbn:     "9780000000002",
			response: `{"ISBN:9780000000002":{"cover":{"large":"l.jpg"}}}`,
			status:   http.StatusOK,
			wantURL:  "l.jpg",
			wantOK:   true,
		},
		{
			name:     "ответ без обложки",
			isbn:     "9780000000003",
			response: `{"ISBN:9780000000003":{}}`,
			status:   http.StatusOK,
			wantOK:   false,
		},
		{
			name:     "ISBN не найден",
			isbn:     "9780000000004",
			response: `{}`,
			status:   http.StatusOK,
			wantOK:   false,
		},
		{
			name:     "ошибка сервиса",
			isbn:     "9780000000005",
			response: `internal error`,
			status:   http.StatusInternalServerError,
			wantOK:   false,
		},
		{
			name:     "некорректный JSON",
			isbn:     "9780000000006",
			response: `{not json`,
			status:   http.StatusOK,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, 5*time.Second)
			gotURL, gotOK := client.FetchCoverURL(context.Background(), tt.isbn)

			assert.Equal(t, tt.wantOK, gotOK)
			assert.Equal(t, tt.wantURL, gotURL)
		})
	}
}

// Пустой ISBN не приводит к внешнему вызову.
func TestClient_FetchCoverURL_EmptyISBN(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	gotURL, gotOK := client.FetchCoverURL(context.Background(), "")

	assert.False(t, gotOK)
	assert.Empty(t, gotURL)
	assert.Zero(t, calls.Load())
}

// Недоступный сервис трактуется как отсутствие результата.
func TestClient_FetchCoverURL_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond)
	gotURL, gotOK := client.FetchCoverURL(context.Background(), "9780000000001")

	assert.False(t, gotOK)
	assert.Empty(t, gotURL)
}
