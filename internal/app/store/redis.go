package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aseptimu/shortyurl/internal/app/config"
	"github.com/aseptimu/shortyurl/internal/app/service"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore хранит каждую запись в отдельном хеше url:<shortUrl>.
type RedisStore struct {
	client *redis.Client
	logger *zap.SugaredLogger
}

const redisKeyPrefix = "url:"

// createScript создаёт хеш, только если ключа ещё нет.
var createScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return 0
end
redis.call("HSET", KEYS[1], "id", ARGV[1], "shortUrl", ARGV[2], "url", ARGV[3], "clicks", 0)
return 1
`)

// visitScript увеличивает счётчик существующей записи и возвращает её поля.
var visitScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return false
end
local clicks = redis.call("HINCRBY", KEYS[1], "clicks", 1)
return {redis.call("HGET", KEYS[1], "id"), redis.call("HGET", KEYS[1], "url"), clicks}
`)

type redisRecord struct {
	ID          string `redis:"id"`
	ShortURL    string `redis:"shortUrl"`
	OriginalURL string `redis:"url"`
	Clicks      int64  `redis:"clicks"`
}

// NewRedisStore подключается к Redis и проверяет соединение.
func NewRedisStore(ctx context.Context, opts *redis.Options, logger *zap.SugaredLogger) (*RedisStore, error) {
	client := redis.NewClient(opts)
	s := &RedisStore{client: client, logger: logger}
	if err := s.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return s, nil
}

func redisKey(shortURL string) string {
	return redisKeyPrefix + shortURL
}

func (s *RedisStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Exists(ctx context.Context, shortURL string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()

	n, err := s.client.Exists(ctx, redisKey(shortURL)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) Create(ctx context.Context, shortURL, originalURL string) (service.URLRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()

	record := service.URLRecord{
		ID:          uuid.NewString(),
		ShortURL:    shortURL,
		OriginalURL: originalURL,
	}

	created, err := createScript.Run(ctx, s.client, []string{redisKey(shortURL)}, record.ID, shortURL, originalURL).Int()
	if err != nil {
		return service.URLRecord{}, fmt.Errorf("failed to create record: %w", err)
	}
	if created == 0 {
		s.logger.Debugw("Short URL taken by a concurrent insert", "shortURL", shortURL)
		return service.URLRecord{}, service.ErrShortURLTaken
	}
	return record, nil
}

func (s *RedisStore) Get(ctx context.Context, shortURL string) (service.URLRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()

	res := s.client.HGetAll(ctx, redisKey(shortURL))
	fields, err := res.Result()
	if err != nil {
		return service.URLRecord{}, err
	}
	if len(fields) == 0 {
		return service.URLRecord{}, service.ErrURLNotFound
	}

	var rec redisRecord
	if err := res.Scan(&rec); err != nil {
		return service.URLRecord{}, fmt.Errorf("failed to decode record: %w", err)
	}
	return service.URLRecord(rec), nil
}

func (s *RedisStore) Visit(ctx context.Context, shortURL string) (service.URLRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DBTimeout)
	defer cancel()

	values, err := visitScript.Run(ctx, s.client, []string{redisKey(shortURL)}).Slice()
	if errors.Is(err, redis.Nil) {
		return service.URLRecord{}, service.ErrURLNotFound
	}
	if err != nil {
		return service.URLRecord{}, fmt.Errorf("failed to register visit: %w", err)
	}
	if len(values) != 3 {
		return service.URLRecord{}, fmt.Errorf("unexpected visit reply: %v", values)
	}

	id, _ := values[0].(string)
	originalURL, _ := values[1].(string)
	clicks, _ := values[2].(int64)
	return service.URLRecord{
		ID:          id,
		ShortURL:    shortURL,
		OriginalURL: originalURL,
		Clicks:      clicks,
	}, nil
}
