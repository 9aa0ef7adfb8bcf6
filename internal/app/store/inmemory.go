package store

import (
	"context"
	"sync"

	"github.com/aseptimu/shortyurl/internal/app/service"
	"github.com/google/uuid"
)

// InMemoryStore хранит записи в памяти процесса.
type InMemoryStore struct {
	data map[string]service.URLRecord
	mu   sync.RWMutex
}

func NewStore() *InMemoryStore {
	return &InMemoryStore{
		data: make(map[string]service.URLRecord),
	}
}

func (m *InMemoryStore) Exists(_ context.Context, shortURL string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.data[shortURL]
	return exists, nil
}

func (m *InMemoryStore) Create(_ context.Context, shortURL, originalURL string) (service.URLRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, found := m.data[shortURL]; found {
		return service.URLRecord{}, service.ErrShortURLTaken
	}

	record := service.URLRecord{
		ID:          uuid.NewString(),
		ShortURL:    shortURL,
		OriginalURL: originalURL,
	}
	m.data[shortURL] = record
	return record, nil
}

func (m *InMemoryStore) Get(_ context.Context, shortURL string) (service.URLRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, exists := m.data[shortURL]
	if !exists {
		return service.URLRecord{}, service.ErrURLNotFound
	}
	return record, nil
}

func (m *InMemoryStore) Visit(_ context.Context, shortURL string) (service.URLRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, exists := m.data[shortURL]
	if !exists {
		return service.URLRecord{}, service.ErrURLNotFound
	}
	record.Clicks++
	m.data[shortURL] = record
	return record, nil
}

// load кладёт запись как есть, заменяя прежнюю с тем же кодом.
func (m *InMemoryStore) load(record service.URLRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[record.ShortURL] = record
}

// snapshot возвращает копию всех записей.
func (m *InMemoryStore) snapshot() []service.URLRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]service.URLRecord, 0, len(m.data))
	for _, record := range m.data {
		records = append(records, record)
	}
	return records
}

func (m *InMemoryStore) Ping(context.Context) error {
	return nil
}

func (m *InMemoryStore) Close() error {
	return nil
}
