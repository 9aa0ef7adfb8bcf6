// Package service содержит бизнес-логику сокращения и разрешения ссылок.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aseptimu/shortyurl/internal/app/utils"
)

const (
	// ShortURLLength задаёт длину генерируемого короткого кода.
	ShortURLLength = 6
	// MaxAttempts ограничивает число попыток подобрать свободный код.
	MaxAttempts = 10
)

// URLRecord — сохранённое соответствие короткого кода и исходного URL.
type URLRecord struct {
	ID          string `json:"id"`
	ShortURL    string `json:"shortUrl"`
	OriginalURL string `json:"url"`
	Clicks      int64  `json:"clicks"`
}

// Store объединяет операции хранилища, нужные сервисам.
type Store interface {
	StoreURLGetter
	StoreURLSetter
}

// StoreURLSetter описывает создание записей.
type StoreURLSetter interface {
	// Exists проверяет наличие кода, не читая саму запись.
	Exists(ctx context.Context, shortURL string) (bool, error)
	// Create сохраняет новую запись с нулевым счётчиком.
	// Если код уже занят, возвращает ErrShortURLTaken.
	Create(ctx context.Context, shortURL, originalURL string) (URLRecord, error)
}

// URLShortener сокращает ссылку и возвращает короткий код.
type URLShortener interface {
	ShortenURL(ctx context.Context, input string) (string, error)
}

// URLService реализует URLShortener поверх StoreURLSetter.
type URLService struct {
	store    StoreURLSetter
	generate func() string
}

// NewURLService создаёт сервис сокращения ссылок.
func NewURLService(store StoreURLSetter) *URLService {
	return &URLService{
		store: store,
		generate: func() string {
			return utils.RandomString(ShortURLLength)
		},
	}
}

// ShortenURL подбирает свободный короткий код и сохраняет запись.
//
// Проверка Exists лишь отсеивает занятые коды заранее; от гонки двух
// одновременных запросов защищает уникальный индекс хранилища, и отказ
// вставки с ErrShortURLTaken расходует попытку так же, как занятый код.
// После MaxAttempts неудачных попыток возвращается ErrGenerationExhausted.
func (s *URLService) ShortenURL(ctx context.Context, input string) (string, error) {
	if input == "" {
		return "", ErrEmptyURL
	}

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		shortURL := s.generate()

		exists, err := s.store.Exists(ctx, shortURL)
		if err != nil {
			return "", fmt.Errorf("check short URL %q: %w", shortURL, err)
		}
		if exists {
			continue
		}

		record, err := s.store.Create(ctx, shortURL, input)
		if errors.Is(err, ErrShortURLTaken) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("store short URL %q: %w", shortURL, err)
		}

		return record.ShortURL, nil
	}

	return "", ErrGenerationExhausted
}
