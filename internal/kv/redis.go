package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore persiste os blobs em Redis, uma chave por documento.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore cria o store sobre um cliente já configurado. O prefixo isola
// as chaves do portal de outros usos da mesma instância.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

// Load devolve o blob da chave.
func (r *RedisStore) Load(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Save sobrescreve o blob da chave, sem expiração.
func (r *RedisStore) Save(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// Remove apaga a chave.
func (r *RedisStore) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}
