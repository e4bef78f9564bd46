// Package cache wraps go-redis for the public catalog list cache.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(cfg *Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisClient{Client: client}, nil
}

func (r *RedisClient) Close() error {
	return r.Client.Close()
}

// Invalidator drops every cached list of one entity.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// ListCache is the read-through surface use cases depend on. *Lists satisfies it.
type ListCache interface {
	Invalidator
	Get(ctx context.Context, filters interface{}, dest interface{}) (bool, error)
	Set(ctx context.Context, filters interface{}, value interface{}) error
}

// Lists caches JSON-encoded list results under "<prefix>:list:<md5(filters)>".
// A nil *Lists or a zero TTL turns every call into a miss.
type Lists struct {
	redis  *RedisClient
	prefix string
	ttl    time.Duration
}

func NewLists(r *RedisClient, prefix string, ttl time.Duration) *Lists {
	if r == nil {
		return nil
	}
	return &Lists{redis: r, prefix: prefix, ttl: ttl}
}

// Key derives the cache key for a filter value.
func (l *Lists) Key(filters interface{}) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:list:%x", l.prefix, md5.Sum(data)), nil
}

// Get decodes a cached value into dest. It reports false on a miss.
func (l *Lists) Get(ctx context.Context, filters interface{}, dest interface{}) (bool, error) {
	if l == nil || l.ttl <= 0 {
		return false, nil
	}
	key, err := l.Key(filters)
	if err != nil {
		return false, err
	}
	val, err := l.redis.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Lists) Set(ctx context.Context, filters interface{}, value interface{}) error {
	if l == nil || l.ttl <= 0 {
		return nil
	}
	key, err := l.Key(filters)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return l.redis.Client.Set(ctx, key, data, l.ttl).Err()
}

// Invalidate removes every list entry under the prefix.
func (l *Lists) Invalidate(ctx context.Context) error {
	if l == nil {
		return nil
	}
	pattern := l.prefix + ":list:*"
	iter := l.redis.Client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return l.redis.Client.Del(ctx, keys...).Err()
}
