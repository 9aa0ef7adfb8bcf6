package store

import (
	"context"
	"fmt"

	"github.com/aseptimu/shortyurl/internal/app/config"
	"github.com/aseptimu/shortyurl/internal/app/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Storage объединяет хранилище с проверкой доступности и освобождением ресурсов.
type Storage interface {
	service.Store
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Storage = (*InMemoryStore)(nil)
	_ Storage = (*FileStore)(nil)
	_ Storage = (*Database)(nil)
	_ Storage = (*RedisStore)(nil)
	_ Storage = (*SQLiteStore)(nil)
)

// Open выбирает хранилище по конфигурации: PostgreSQL, Redis, SQLite,
// файл или память, в этом порядке. Вызывающий обязан закрыть результат.
func Open(ctx context.Context, cfg *config.ConfigType, logger *zap.SugaredLogger) (Storage, error) {
	switch {
	case cfg.DSN != "":
		logger.Debugw("Database mode enabled, applying migrations")
		if err := MigrateDB(ctx, cfg.DSN, logger); err != nil {
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
		return wrap(NewDB(ctx, cfg.DSN, logger))
	case cfg.RedisAddr != "":
		logger.Debugw("Redis mode enabled", "addr", cfg.RedisAddr)
		return wrap(NewRedisStore(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger))
	case cfg.SQLitePath != "":
		logger.Debugw("SQLite mode enabled", "path", cfg.SQLitePath)
		return wrap(NewSQLiteStore(ctx, cfg.SQLitePath, logger))
	case cfg.FileStoragePath != "":
		logger.Debugw("File storage mode enabled", "storagePath", cfg.FileStoragePath)
		return wrap(NewFileStore(cfg.FileStoragePath))
	default:
		logger.Debugw("In-memory storage mode enabled")
		return NewStore(), nil
	}
}

// wrap не даёт nil-указателю конкретного типа превратиться в ненулевой интерфейс.
func wrap[S Storage](s S, err error) (Storage, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
