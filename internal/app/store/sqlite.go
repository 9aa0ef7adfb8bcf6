package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aseptimu/shortyurl/internal/app/config"
	"github.com/aseptimu/shortyurl/internal/app/database"
	"github.com/aseptimu/shortyurl/internal/app/service"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore хранит записи в файле SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewSQLiteStore открывает базу по пути path и применяет миграции.
func NewSQLiteStore(ctx context.Context, path string, logger *zap.SugaredLogger) (*SQLiteStore, error) {
	db, err := database.Open(ctx, "sqlite3", path)
	if err != nil {
		return nil, err
	}
	// SQLite допускает одного писателя, лишние соединения дают "database is locked".
	db.SetMaxOpenConns(1)

	if err := migrateUp(db, dialectSQLite, logger); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Exists(ctx context.Context, shortURL string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()

	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM url WHERE "shortUrl" = ?)`, shortURL).Scan(&exists)
	return exists, err
}

func (s *SQLiteStore) Create(ctx context.Context, shortURL, originalURL string) (service.URLRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()

	record := service.URLRecord{
		ID:          uuid.NewString(),
		ShortURL:    shortURL,
		OriginalURL: originalURL,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO url (id, "shortUrl", url) VALUES (?, ?, ?)`,
		record.ID, shortURL, originalURL,
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return service.URLRecord{}, service.ErrShortURLTaken
	}
	if err != nil {
		return service.URLRecord{}, fmt.Errorf("failed to insert url: %w", err)
	}
	return record, nil
}

func (s *SQLiteStore) Get(ctx context.Context, shortURL string) (service.URLRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `SELECT id, url, clicks FROM url WHERE "shortUrl" = ?`, shortURL)
	return scanSQLRecord(row, shortURL)
}

func (s *SQLiteStore) Visit(ctx context.Context, shortURL string) (service.URLRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		`UPDATE url SET clicks = clicks + 1 WHERE "shortUrl" = ? RETURNING id, url, clicks`,
		shortURL,
	)
	return scanSQLRecord(row, shortURL)
}

func scanSQLRecord(row *sql.Row, shortURL string) (service.URLRecord, error) {
	record := service.URLRecord{ShortURL: shortURL}
	err := row.Scan(&record.ID, &record.OriginalURL, &record.Clicks)
	if errors.Is(err, sql.ErrNoRows) {
		return service.URLRecord{}, service.ErrURLNotFound
	}
	if err != nil {
		return service.URLRecord{}, err
	}
	return record, nil
}
