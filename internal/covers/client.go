// Package covers реализует поиск обложек книг по ISBN через внешний
// сервис Open Library. Любой сбой внешнего сервиса трактуется как
// отсутствие результата и никогда не поднимается наверх как ошибка.
package covers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// Client клиент Books API Open Library.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент с ограничением времени запроса.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type bookData struct {
	Cover struct {
		Small  string `json:"small"`
		Medium string `json:"medium"`
		Large  string `json:"large"`
	} `json:"cover"`
}

// FetchCoverURL возвращает ссылку на обложку книги по ISBN.
// Предпочитает среднее разрешение, затем большое. Пустой ISBN не
// приводит к внешнему вызову. Второе возвращаемое значение false
// означает, что обложка не найдена, в том числе из-за таймаута,
// сетевой ошибки или некорректного ответа.
func (c *Client) FetchCoverURL(ctx context.Context, isbn string) (string, bool) {
	if isbn == "" {
		return "", false
	}

	bibkey := "ISBN:" + isbn
	reqURL := c.baseURL + "/api/books?bibkeys=" + url.QueryEscape(bibkey) +
		"&format=json&jscmd=data"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	var payload map[string]bookData
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false
	}

	data, ok := payload[bibkey]
	if !ok {
		return "", false
	}
	if data.Cover.Medium != "" {
		return data.Cover.Medium, true
	}
	if data.Cover.Large != "" {
		return data.Cover.Large, true
	}
	return "", false
}
