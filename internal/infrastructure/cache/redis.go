// Package cache implementa la caché del árbol de categorías sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/categorias-api/pkg/config"
)

// RedisCache caché JSON con expiración fija.
type RedisCache struct {
	Db  *redis.Client
	ttl time.Duration
}

// NewRedis conecta con Redis y verifica la conexión con PING.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	const op = "cache.NewRedis"
	db := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &RedisCache{Db: db, ttl: cfg.TTL}, nil
}

// Get carga el valor de key en dest. Devuelve false si la clave no existe.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	const op = "cache.Get"
	val, err := c.Db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	const op = "cache.Set"
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.Db.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Generation devuelve la generación actual de key (0 si nunca se invalidó).
func (c *RedisCache) Generation(ctx context.Context, key string) (int64, error) {
	gen, err := c.Db.Get(ctx, generationKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache.Generation: %w", err)
	}
	return gen, nil
}

// Invalidate borra key y avanza su generación en una sola transacción MULTI/EXEC.
// Los valores guardados bajo generaciones anteriores dejan de leerse y expiran por TTL.
func (c *RedisCache) Invalidate(ctx context.Context, key string) error {
	_, err := c.Db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(key))
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache.Invalidate: %w", err)
	}
	return nil
}

func generationKey(key string) string {
	return key + ":gen"
}

// Close cierra la conexión.
func (c *RedisCache) Close() error {
	return c.Db.Close()
}

// Noop caché deshabilitada: nunca hay aciertos.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)    { return false, nil }
func (Noop) Set(context.Context, string, any) error            { return nil }
func (Noop) Invalidate(context.Context, string) error          { return nil }
func (Noop) Generation(context.Context, string) (int64, error) { return 0, nil }
