// Package cache содержит реализации слота, в котором сохраняется
// сериализованная сессия: redis для развёртывания и память процесса для
// локального запуска и тестов.
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/gesture-speak/internal/config"
)

// Redis слот сессии поверх redis.
type Redis struct {
	Db *redis.Client
}

// InitServer подключается к redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Redis, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Redis{Db: db}, nil
}

// Load читает значение по ключу; found == false, если ключа нет.
func (c *Redis) Load(ctx context.Context, key string) ([]byte, bool, error) {
	const op = "cache.Redis.Load"
	val, err := c.Db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// Save записывает значение по ключу без срока жизни.
func (c *Redis) Save(ctx context.Context, key string, data []byte) error {
	const op = "cache.Redis.Save"
	if err := c.Db.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение с redis.
func (c *Redis) Close() error {
	return c.Db.Close()
}
