package service

import (
	"context"
	"fmt"
)

// StoreURLGetter описывает чтение записей.
type StoreURLGetter interface {
	// Get возвращает запись без изменения счётчика.
	Get(ctx context.Context, shortURL string) (URLRecord, error)
	// Visit атомарно увеличивает счётчик переходов на единицу
	// и возвращает обновлённую запись.
	Visit(ctx context.Context, shortURL string) (URLRecord, error)
}

// GetURLService реализует получение исходных URL через StoreURLGetter.
type GetURLService struct {
	store StoreURLGetter
}

// NewGetURLService создаёт новый GetURLService на основе переданного хранилища.
func NewGetURLService(store StoreURLGetter) *GetURLService {
	return &GetURLService{store: store}
}

// LookupURL возвращает исходный URL, не засчитывая переход.
func (s *GetURLService) LookupURL(ctx context.Context, shortURL string) (string, error) {
	record, err := s.store.Get(ctx, shortURL)
	if err != nil {
		return "", fmt.Errorf("lookup %q: %w", shortURL, err)
	}
	return record.OriginalURL, nil
}

// ResolveURL засчитывает переход и возвращает исходный URL.
func (s *GetURLService) ResolveURL(ctx context.Context, shortURL string) (string, error) {
	record, err := s.store.Visit(ctx, shortURL)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", shortURL, err)
	}
	return record.OriginalURL, nil
}

// GetStats возвращает запись целиком вместе со счётчиком переходов.
func (s *GetURLService) GetStats(ctx context.Context, shortURL string) (URLRecord, error) {
	record, err := s.store.Get(ctx, shortURL)
	if err != nil {
		return URLRecord{}, fmt.Errorf("stats %q: %w", shortURL, err)
	}
	return record, nil
}
