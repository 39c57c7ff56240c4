package covers

import (
	"context"
	"log/slog"
	"time"

	"github.com/sofiakuzmina/book-tracker/internal/lib/sl"
)

// Fetcher описывает источник обложек по ISBN.
type Fetcher interface {
	FetchCoverURL(ctx context.Context, isbn string) (string, bool)
}

// Cache описывает методы для кэширования найденных обложек.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service оборачивает клиент обложек кэшем. Кэшируются только
// успешные результаты; ошибки кэша игнорируются, поиск деградирует
// до прямого обращения к внешнему сервису.
type Service struct {
	fetcher  Fetcher
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewService создает новый Service. Кэш может быть nil, тогда каждый
// вызов уходит во внешний сервис.
func NewService(fetcher Fetcher, cache Cache, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// FetchCoverURL возвращает ссылку на обложку по ISBN, используя кэш.
// Семантика совпадает с Client.FetchCoverURL.
func (s *Service) FetchCoverURL(ctx context.Context, isbn string) (string, bool) {
	if isbn == "" {
		return "", false
	}

	key := "cover:" + isbn
	if s.cache != nil {
		var cached string
		found, err := s.cache.Get(key, &cached)
		if err != nil {
			s.log.Warn("cover cache read failed", sl.Err(err))
		} else if found {
			return cached, true
		}
	}

	coverURL, ok := s.fetcher.FetchCoverURL(ctx, isbn)
	if !ok {
		return "", false
	}

	if s.cache != nil {
		if err := s.cache.Set(key, coverURL, s.cacheTTL); err != nil {
			s.log.Warn("cover cache write failed", sl.Err(err))
		}
	}
	return coverURL, true
}

// InvalidateCover удаляет кэшированную обложку для ISBN. Вызывается,
// когда пользователь задаёт ссылку на обложку вручную и найденная
// раньше ссылка больше не актуальна. Ошибки кэша игнорируются.
func (s *Service) InvalidateCover(isbn string) {
	if isbn == "" || s.cache == nil {
		return
	}
	if err := s.cache.Invalidate("cover:" + isbn); err != nil {
		s.log.Warn("cover cache invalidate failed", sl.Err(err))
	}
}
