package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/aseptimu/shortyurl/internal/app/service"
	"github.com/google/uuid"
)

// FileStore держит записи в памяти и дописывает каждое изменение
// в журнал JSON Lines. При загрузке последняя строка для кода побеждает,
// после чего журнал переписывается в сжатом виде.
//
// Изменение попадает в память только после успешной записи в журнал.
type FileStore struct {
	mu       sync.Mutex
	filePath string
	mem      *InMemoryStore
	file     *os.File
}

func NewFileStore(filePath string) (*FileStore, error) {
	fs := &FileStore{
		filePath: filePath,
		mem:      NewStore(),
	}
	if err := fs.loadFromFile(); err != nil {
		return nil, err
	}
	if err := fs.rewriteFile(); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(fs.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage file: %w", err)
	}
	fs.file = file
	return fs, nil
}

// loadFromFile читает журнал построчно без ограничения на длину строки.
// Строки, которые не удаётся разобрать (например, оборванная запись), пропускаются.
func (fs *FileStore) loadFromFile() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open storage file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		line, readErr := reader.ReadBytes('\n')
		if line = bytes.TrimSpace(line); len(line) > 0 {
			var record service.URLRecord
			if err := json.Unmarshal(line, &record); err == nil && record.ShortURL != "" {
				fs.mem.load(record)
			}
		}
		if errors.Is(readErr, io.EOF) {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("failed to read storage file: %w", readErr)
		}
	}
}

// rewriteFile записывает сжатый журнал во временный файл рядом с исходным
// и атомарно подменяет им журнал.
func (fs *FileStore) rewriteFile() (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(fs.filePath), filepath.Base(fs.filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to rewrite storage file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	writer := bufio.NewWriter(tmp)
	encoder := json.NewEncoder(writer)
	for _, record := range fs.mem.snapshot() {
		if err = encoder.Encode(record); err != nil {
			return err
		}
	}
	if err = writer.Flush(); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), fs.filePath); err != nil {
		return fmt.Errorf("failed to rewrite storage file: %w", err)
	}
	return nil
}

// append дописывает запись в журнал. При неудачной записи журнал
// обрезается до прежнего размера, чтобы следующая строка не склеилась с обрывком.
func (fs *FileStore) append(record service.URLRecord) error {
	if fs.file == nil {
		return os.ErrClosed
	}
	jsonData, err := json.Marshal(record)
	if err != nil {
		return err
	}

	info, err := fs.file.Stat()
	if err != nil {
		return err
	}
	if _, err = fs.file.Write(append(jsonData, '\n')); err != nil {
		if truncErr := fs.file.Truncate(info.Size()); truncErr != nil {
			return errors.Join(err, truncErr)
		}
		return err
	}
	return nil
}

func (fs *FileStore) Exists(ctx context.Context, shortURL string) (bool, error) {
	return fs.mem.Exists(ctx, shortURL)
}

func (fs *FileStore) Create(ctx context.Context, shortURL, originalURL string) (service.URLRecord, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	exists, err := fs.mem.Exists(ctx, shortURL)
	if err != nil {
		return service.URLRecord{}, err
	}
	if exists {
		return service.URLRecord{}, service.ErrShortURLTaken
	}

	record := service.URLRecord{
		ID:          uuid.NewString(),
		ShortURL:    shortURL,
		OriginalURL: originalURL,
	}
	if err := fs.append(record); err != nil {
		return service.URLRecord{}, fmt.Errorf("failed to persist record: %w", err)
	}
	fs.mem.load(record)
	return record, nil
}

func (fs *FileStore) Get(ctx context.Context, shortURL string) (service.URLRecord, error) {
	return fs.mem.Get(ctx, shortURL)
}

// Visit сериализуется через fs.mu, поэтому чтение и запись счётчика не разрываются.
func (fs *FileStore) Visit(ctx context.Context, shortURL string) (service.URLRecord, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	record, err := fs.mem.Get(ctx, shortURL)
	if err != nil {
		return service.URLRecord{}, err
	}
	record.Clicks++
	if err := fs.append(record); err != nil {
		return service.URLRecord{}, fmt.Errorf("failed to persist click: %w", err)
	}
	fs.mem.load(record)
	return record, nil
}

func (fs *FileStore) Ping(context.Context) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.file == nil {
		return os.ErrClosed
	}
	_, err := fs.file.Stat()
	return err
}

func (fs *FileStore) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.file == nil {
		return nil
	}
	err := fs.file.Close()
	fs.file = nil
	return err
}
