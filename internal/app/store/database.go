package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aseptimu/shortyurl/internal/app/config"
	"github.com/aseptimu/shortyurl/internal/app/service"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Database хранит записи в PostgreSQL.
type Database struct {
	dbpool *pgxpool.Pool
	logger *zap.SugaredLogger
}

// NewDB открывает пул pgx и проверяет соединение.
// При ошибке проверки пул закрывается.
func NewDB(ctx context.Context, dsn string, logger *zap.SugaredLogger) (*Database, error) {
	dbpool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	db := &Database{dbpool, logger}
	if err := db.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (db *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()
	return db.dbpool.Ping(ctx)
}

func (db *Database) Close() error {
	db.dbpool.Close()
	return nil
}

const ExistsQuery = `SELECT EXISTS (SELECT 1 FROM url WHERE "shortUrl" = $1)`

func (db *Database) Exists(ctx context.Context, shortURL string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()

	var exists bool
	if err := db.dbpool.QueryRow(ctx, ExistsQuery, shortURL).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

const CreateQuery = `INSERT INTO url (id, "shortUrl", url) VALUES ($1, $2, $3) RETURNING clicks`

func (db *Database) Create(ctx context.Context, shortURL, originalURL string) (service.URLRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()

	record := service.URLRecord{
		ID:          uuid.NewString(),
		ShortURL:    shortURL,
		OriginalURL: originalURL,
	}

	db.logger.Debugw("Attempting to insert URL", "shortURL", shortURL, "originalURL", originalURL)

	err := db.dbpool.QueryRow(ctx, CreateQuery, record.ID, shortURL, originalURL).Scan(&record.Clicks)
	if isUniqueViolation(err) {
		db.logger.Debugw("Short URL taken by a concurrent insert", "shortURL", shortURL)
		return service.URLRecord{}, service.ErrShortURLTaken
	}
	if err != nil {
		return service.URLRecord{}, err
	}

	return record, nil
}

const GetQuery = `SELECT id, url, clicks FROM url WHERE "shortUrl" = $1`

func (db *Database) Get(ctx context.Context, shortURL string) (service.URLRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()

	return db.scanRecord(db.dbpool.QueryRow(ctx, GetQuery, shortURL), shortURL)
}

// VisitQuery увеличивает счётчик и читает запись одним оператором.
const VisitQuery = `UPDATE url SET clicks = clicks + 1 WHERE "shortUrl" = $1 RETURNING id, url, clicks`

func (db *Database) Visit(ctx context.Context, shortURL string) (service.URLRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()

	return db.scanRecord(db.dbpool.QueryRow(ctx, VisitQuery, shortURL), shortURL)
}

func (db *Database) scanRecord(row pgx.Row, shortURL string) (service.URLRecord, error) {
	record := service.URLRecord{ShortURL: shortURL}
	err := row.Scan(&record.ID, &record.OriginalURL, &record.Clicks)
	if errors.Is(err, pgx.ErrNoRows) {
		return service.URLRecord{}, service.ErrURLNotFound
	}
	if err != nil {
		return service.URLRecord{}, err
	}
	return record, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
